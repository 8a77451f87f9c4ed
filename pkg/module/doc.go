// Package module activates console modules.
//
// The manifest lists every known module with an active flag and an order.
// [Manager.ActiveModules] returns the active entries sorted by order, ties
// broken by id. [Manager.Init] initializes them one by one, exactly once per
// process; a module may rely on modules before it but never on those after.
// Any initializer failure aborts the bootstrap.
//
//	mgr := module.NewManager(cfg.Modules)
//	_ = mgr.Register(dashboard.New(), costobject.New(), system.New())
//
//	active, err := mgr.ActiveModules()
//	if err != nil {
//		return err
//	}
//	if err := mgr.Init(ctx, env, active); err != nil {
//		return err
//	}
//
//	fn, err := mgr.Action("dashboard", "show")
package module
