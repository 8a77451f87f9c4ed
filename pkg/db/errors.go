package db

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrFailedToParseDBConfig    = errors.New("db: failed to parse database configuration")
	ErrFailedToOpenDBConnection = errors.New("db: failed to open database connection")
	ErrHealthcheckFailed        = errors.New("db: healthcheck failed")
	ErrSetDialect               = errors.New("db migrator: failed to set dialect")
	ErrApplyMigrations          = errors.New("db migrator: failed to apply migrations")
	ErrUnsupportedConn          = errors.New("db: connection does not support this operation")
	ErrTx                       = errors.New("db: transaction failed")

	ErrPoolConfig        = errors.New("db: invalid pool configuration")
	ErrPoolLookup        = errors.New("db: unknown pool role")
	ErrMissingRoleConfig = errors.New("db: missing role configuration")
	ErrRoleExists        = errors.New("db: role already registered")
	ErrPoolSealed        = errors.New("db: pool is sealed")
	ErrEmptyRole         = errors.New("db: role cannot be empty")
	ErrMissingDriver     = errors.New("db: driver is not set")
	ErrUnsupportedDriver = errors.New("db: unsupported driver")
	ErrMissingField      = errors.New("db: missing connection field")
	ErrInvalidField      = errors.New("db: invalid connection field")
)

// PoolConfigError is returned by Pool.Create when a role cannot be registered.
type PoolConfigError struct {
	Err  error
	Role string
}

func (e *PoolConfigError) Error() string {
	return fmt.Sprintf("pool role %q: %v", e.Role, e.Err)
}

func (e *PoolConfigError) Unwrap() error { return e.Err }

// Is matches ErrPoolConfig.
func (e *PoolConfigError) Is(target error) bool { return target == ErrPoolConfig }

// PoolLookupError is returned by Pool.Get for an unknown role.
type PoolLookupError struct {
	Role string
}

func (e *PoolLookupError) Error() string {
	return fmt.Sprintf("pool role %q is not registered", e.Role)
}

// Is matches ErrPoolLookup.
func (e *PoolLookupError) Is(target error) bool { return target == ErrPoolLookup }

// IsStorageError reports whether err originates in the storage layer:
// pool configuration, lookup, connection, or a PostgreSQL server error.
func IsStorageError(err error) bool {
	if err == nil {
		return false
	}
	for _, target := range []error{
		ErrPoolConfig,
		ErrPoolLookup,
		ErrFailedToOpenDBConnection,
		ErrFailedToParseDBConfig,
		ErrHealthcheckFailed,
		ErrApplyMigrations,
		ErrTx,
	} {
		if errors.Is(err, target) {
			return true
		}
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return true
	}
	var connErr *pgconn.ConnectError
	return errors.As(err, &connErr)
}
