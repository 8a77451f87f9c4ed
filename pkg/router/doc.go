// Package router maps console requests to (module, action) targets.
//
// The route table is loaded once at startup from YAML or HCL and compiled into
// an ordered list of rules. Patterns use chi syntax. Routing walks the rules in
// table order and returns the first match:
//
//	r, err := router.LoadFile("configs/routes.yaml")
//	if err != nil {
//		return err // *router.RouteTableError
//	}
//
//	m, err := r.Route(req)
//	if errors.Is(err, router.ErrRouteNotFound) {
//		// render not found
//	}
//	fmt.Println(m.Target.Module, m.Target.Action, m.Param("lang"))
//
// A rule with an empty method, or "*", matches every method.
package router
