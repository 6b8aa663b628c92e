package resolver

// Levenshtein exposes levenshtein for tests.
var Levenshtein = levenshtein
