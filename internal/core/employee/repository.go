package employee

import "context"

// Repository は社員参照の抽象です。
type Repository interface {
	FindByID(ctx context.Context, id string) (*Employee, error)
	List(ctx context.Context) ([]*Employee, error)
}
