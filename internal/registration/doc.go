// Package registration coordinates the user sign-up flow.
//
// The Service owns no step logic itself: it sequences four injected
// collaborators (Validator, UserStore, Notifier, AuditLogger), each a
// narrow single-method capability. Validation and persistence are fatal
// steps; notification and audit logging run best-effort after the save
// has committed and surface their failures as warnings on the result.
package registration
