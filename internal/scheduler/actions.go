package scheduler

// Navigation targets for notification quick actions. Unknown action ids fall
// back to the routine screen.
var actionTargets = map[string]string{
	"log-weight":  "/weight",
	"log-meal":    "/meals",
	"drink-water": "/water",
	"view-todos":  "/todos",
	"snooze":      "/routine",
}

const defaultActionTarget = "/routine"

// ActionTarget resolves an action id to its navigation target.
func ActionTarget(actionID string) string {
	if target, ok := actionTargets[actionID]; ok {
		return target
	}
	return defaultActionTarget
}
