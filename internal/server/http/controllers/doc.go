// Package controllers contains the HTTP controllers behind the dashboard
// API: general (health, stats), monitor (servers, metric history),
// notifications (snapshot, mutations, live feed), the SSE delivery channel,
// and export. A ControllerRegistry wires them onto one mux.
package controllers
