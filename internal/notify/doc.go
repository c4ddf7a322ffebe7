// Package notify implements the notification core: a capacity-bounded,
// newest-first Store, a typed-event Bus with synchronous ordered dispatch,
// a single-slot Persistence adapter over Pebble, and the Service that
// composes them behind the public API consumed by transports.
//
// # Contracts
//
//   - The store never exceeds its cap; oldest (tail) entries evict first.
//   - read transitions false→true only; marking is idempotent.
//   - Removal is idempotent, which makes expiry timers fire-and-forget.
//   - Every mutation emits exactly one EventUpdated after the mutation is
//     visible to List; AddNotification additionally emits EventNew first,
//     and a real read transition emits EventRead first.
//   - Persistence is best-effort: save/load failures are logged and the
//     in-memory store remains authoritative.
//
// Example:
//
//	slot := notify.NewSlot(db, "dashboard_notifications", logger)
//	svc := notify.NewService(100, slot, logger)
//	sub := svc.Bus().Subscribe(notify.EventUpdated, func(p notify.Payload) { render(p.Snapshot) })
//	defer sub.Unsubscribe()
//	id := svc.AddNotification(notify.SeverityCritical, "Disk Full", "DB-01 disk at 95%", notify.Options{Persist: true})
//	svc.MarkAsRead(id)
package notify
