package ports

import (
	"context"

	"go.trai.ch/cppdeps/internal/core/domain"
)

// TargetAttacher attaches a resolved target to a consumer target.
//
//go:generate go run go.uber.org/mock/mockgen -source=attacher.go -destination=mocks/mock_attacher.go -package=mocks
type TargetAttacher interface {
	Attach(ctx context.Context, consumer string, visibility domain.Visibility, target string) error
}
