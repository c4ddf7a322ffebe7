// Package runtime wires storage, config, and the dashboard services into a
// single-node InsightUI instance. It exposes Open/Close, a basic health
// check, and accessors for the notification and monitor services.
//
// Example:
//
//	cfg := config.Default()
//	rt, _ := runtime.Open(runtime.Options{DataDir: "./data", Fsync: pebblestore.FsyncModeAlways, Config: cfg})
//	defer rt.Close()
//	_ = rt.CheckHealth(context.Background())
//	id := rt.Notifications().AddNotification(notify.SeverityInfo, "Deploy", "v1.2 released", notify.Options{})
//	_ = id
package runtime
