// Package moderation runs the pending-changes workflow.
//
// Mutations by users whose permissions require approval are not applied;
// they are submitted to the queue. An admin then approves or rejects each
// change. Both decisions remove the change from the queue. Approval writes
// the stored payload to the content tree only when the server runs with
// apply_on_approve; otherwise approving just acknowledges the change.
package moderation
