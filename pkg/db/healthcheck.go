package db

import (
	"context"
	"errors"
)

// Healthcheck returns a closure that pings conn.
// Compatible with health.CheckFunc.
func Healthcheck(conn Conn) func(context.Context) error {
	return func(ctx context.Context) error {
		if conn == nil {
			return ErrHealthcheckFailed
		}
		if err := conn.Ping(ctx); err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		return nil
	}
}

// Healthchecks returns one check per registered role.
func (p *Pool) Healthchecks() map[string]func(context.Context) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	checks := make(map[string]func(context.Context) error, len(p.conns))
	for role, conn := range p.conns {
		checks["db:"+role] = Healthcheck(conn)
	}
	return checks
}
