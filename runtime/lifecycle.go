package runtime

// Tree walkers for mount, unmount, and app binding. Binding gives
// every widget its App back-pointer; mounting fires Lifecycle hooks
// top-down, unmounting fires them bottom-up after detaching children.

func bindTree(w Widget, app *App) {
	if w == nil {
		return
	}
	w.WidgetBase().app = app
	if c, ok := w.(Binder); ok {
		c.Bind(app)
	}
	if container, ok := w.(Container); ok {
		for _, child := range container.Children() {
			bindTree(child, app)
		}
	}
}

func mountTree(w Widget) {
	if w == nil {
		return
	}
	if m, ok := w.(Lifecycle); ok {
		m.Mount()
	}
	if container, ok := w.(Container); ok {
		for _, child := range container.Children() {
			mountTree(child)
		}
	}
}

// unmountTree tears a subtree down: children first, then the widget's
// own Unmount hook, then the app back-pointer. The app is told about
// every unmounted widget so focus, pending rebuilds, and hover/drag
// tracking never dangle.
func unmountTree(w Widget) {
	if w == nil {
		return
	}
	if container, ok := w.(Container); ok {
		for _, child := range container.Children() {
			unmountTree(child)
		}
	}
	if m, ok := w.(Lifecycle); ok {
		m.Unmount()
	}
	base := w.WidgetBase()
	if base.app != nil {
		base.app.widgetUnmounted(w)
	}
	base.app = nil
	base.parent = nil
}
