// Package permission evaluates what an authenticated user may do.
//
// Users carry four flags (canCreate, canEdit, canDelete, requiresApproval).
// The evaluator maps the flags onto a closed set of capabilities and answers,
// for an action, whether it is allowed and whether the resulting mutation
// must be detoured through the moderation queue instead of being applied.
//
//	d := permission.Evaluate(user, permission.ActionDelete)
//	if !d.Allowed {
//	    // 403 with d.Reason
//	}
//	if d.RequiresApproval {
//	    // enqueue instead of apply
//	}
//
// Admins are always allowed and never require approval. Reads are always
// allowed.
package permission
