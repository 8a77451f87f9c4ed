// Package health runs named checks in parallel and aggregates a report.
//
//	report := health.Run(ctx, health.Checks{
//		"db:admin": db.Healthcheck(conn),
//		"redis":    redis.Healthcheck(client),
//	}, health.WithTimeout(2*time.Second))
//
//	fmt.Print(report)
//	if err := report.Err(); err != nil {
//		// at least one check failed
//	}
package health
