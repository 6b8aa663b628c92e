package mapping

type builtin struct {
	probe  string
	target string
}

// builtins holds the names widely used packages are discoverable under and the target they export.
// Keys are manifest (vcpkg port) names.
var builtins = map[string]builtin{
	"abseil":        {probe: "absl", target: "absl::base"},
	"benchmark":     {probe: "benchmark", target: "benchmark::benchmark"},
	"boost":         {probe: "Boost", target: "Boost::boost"},
	"catch2":        {probe: "Catch2", target: "Catch2::Catch2WithMain"},
	"cli11":         {probe: "CLI11", target: "CLI11::CLI11"},
	"curl":          {probe: "CURL", target: "CURL::libcurl"},
	"doctest":       {probe: "doctest", target: "doctest::doctest"},
	"eigen3":        {probe: "Eigen3", target: "Eigen3::Eigen"},
	"fmt":           {probe: "fmt", target: "fmt::fmt"},
	"glm":           {probe: "glm", target: "glm::glm"},
	"gtest":         {probe: "GTest", target: "GTest::gtest_main"},
	"magic-enum":    {probe: "magic_enum", target: "magic_enum::magic_enum"},
	"ms-gsl":        {probe: "Microsoft.GSL", target: "Microsoft.GSL::GSL"},
	"nlohmann-json": {probe: "nlohmann_json", target: "nlohmann_json::nlohmann_json"},
	"openssl":       {probe: "OpenSSL", target: "OpenSSL::SSL"},
	"protobuf":      {probe: "Protobuf", target: "protobuf::libprotobuf"},
	"range-v3":      {probe: "range-v3", target: "range-v3::range-v3"},
	"sdl2":          {probe: "SDL2", target: "SDL2::SDL2"},
	"spdlog":        {probe: "spdlog", target: "spdlog::spdlog"},
	"sqlite3":       {probe: "unofficial-sqlite3", target: "unofficial::sqlite3::sqlite3"},
	"tl-expected":   {probe: "tl-expected", target: "tl::expected"},
	"yaml-cpp":      {probe: "yaml-cpp", target: "yaml-cpp::yaml-cpp"},
	"zlib":          {probe: "ZLIB", target: "ZLIB::ZLIB"},
}
