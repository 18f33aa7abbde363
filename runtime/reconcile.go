package runtime

import "reflect"

// The reconciler merges a freshly built subtree into the mounted one.
// Nodes that match by structural position (or by explicit key) keep
// their mounted identity, and with it their geometry, focus, and
// scroll state, while their configuration is copied from the new
// build. Mismatched nodes are unmounted and replaced.

// childReplacer is implemented by containers whose child list the
// reconciler may rewrite in place.
type childReplacer interface {
	ReplaceChildren(children []Widget)
}

// lazyContainer is implemented by containers that build their children
// on demand. A freshly built instance has produced no children yet, so
// comparing against it would tear down the mounted subtree; the child
// pass is skipped and Update adopts the new configuration instead.
type lazyContainer interface {
	childrenPending() bool
}

func childrenPending(w Widget) bool {
	lc, ok := w.(lazyContainer)
	return ok && lc.childrenPending()
}

// reconcile returns the widget that should remain mounted for app:
// either old (kept and updated) or next (mounted fresh).
func reconcile(app *App, old, next Widget) Widget {
	if next == nil {
		if old != nil {
			unmountTree(old)
		}
		return nil
	}
	if old == nil || !sameKind(old, next) {
		if old != nil {
			unmountTree(old)
		}
		bindTree(next, app)
		mountTree(next)
		return next
	}

	old.WidgetBase().copyConfig(next.WidgetBase())

	oldContainer, oldIsContainer := old.(Container)
	nextContainer, nextIsContainer := next.(Container)
	if oldIsContainer && nextIsContainer && !childrenPending(next) {
		reconcileChildren(app, oldContainer, nextContainer)
	}
	if u, ok := old.(Updater); ok {
		u.Update(next)
	}
	old.WidgetBase().SetDirty(true)
	return old
}

// sameKind reports whether two widgets are interchangeable for
// reconciliation: same concrete type and same identity key.
func sameKind(a, b Widget) bool {
	if reflect.TypeOf(a) != reflect.TypeOf(b) {
		return false
	}
	return a.WidgetBase().Key() == b.WidgetBase().Key()
}

func reconcileChildren(app *App, old, next Container) {
	replacer, ok := old.(childReplacer)
	if !ok {
		return
	}

	oldChildren := old.Children()
	newChildren := next.Children()

	oldByKey := make(map[string]Widget)
	for _, c := range oldChildren {
		if key := c.WidgetBase().Key(); key != "" {
			oldByKey[key] = c
		}
	}

	used := make(map[Widget]bool, len(oldChildren))
	merged := make([]Widget, 0, len(newChildren))
	for i, n := range newChildren {
		var candidate Widget
		if key := n.WidgetBase().Key(); key != "" {
			if prev, found := oldByKey[key]; found && !used[prev] && reflect.TypeOf(prev) == reflect.TypeOf(n) {
				candidate = prev
			}
		} else if i < len(oldChildren) {
			prev := oldChildren[i]
			if !used[prev] && sameKind(prev, n) {
				candidate = prev
			}
		}
		if candidate != nil {
			used[candidate] = true
		}
		merged = append(merged, reconcile(app, candidate, n))
	}

	for _, c := range oldChildren {
		if !used[c] {
			unmountTree(c)
		}
	}
	replacer.ReplaceChildren(merged)
}
