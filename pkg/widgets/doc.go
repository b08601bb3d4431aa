// Package widgets provides headless models of the shell's animated widgets.
//
// Each widget owns its animators exclusively. Construct it with the
// scheduler of the surface it belongs to, wire its callback to whatever
// draws it, and call Dispose when the surface goes away:
//
//	panel, err := widgets.NewScrollable(widgets.ScrollableConfig{
//	    OnHeight: func(h int, visible bool) { view.SetHeight(h, visible) },
//	}, animation.WithScheduler(surface))
//	if err != nil {
//	    return err
//	}
//	defer panel.Dispose()
//
//	panel.AnimateSize(480)
//
// Widgets are not safe for concurrent use; call them from the goroutine
// that drives the scheduler.
package widgets
