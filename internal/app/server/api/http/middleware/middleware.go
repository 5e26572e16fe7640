package middleware

import (
	"github.com/danielgtaylor/huma/v2"
)

// Container collects the middlewares for the handler being wired next.
// GetAllAndClear empties it so the same container can be reused per handler.
type Container struct {
	middlewares huma.Middlewares
}

func NewContainer() *Container {
	return &Container{}
}

func (c *Container) Add(mw func(huma.Context, func(huma.Context))) {
	c.middlewares = append(c.middlewares, mw)
}

func (c *Container) GetAllAndClear() huma.Middlewares {
	mws := c.middlewares
	c.middlewares = nil
	return mws
}
