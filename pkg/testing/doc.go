// Package testing provides deterministic time for animation tests.
//
// # Quick Start
//
// Create a tester, build animators with its options, and step frames:
//
//	func TestPanelOpens(t *testing.T) {
//	    tester := motiontest.NewTesterWithT(t)
//	    anim, _ := animation.New(cfg, tester.Options()...)
//	    anim.Play()
//
//	    tester.PumpFor(150 * time.Millisecond)
//	    if anim.Value() < 50 {
//	        t.Errorf("value = %v", anim.Value())
//	    }
//	}
//
// # Scheduling
//
// [ManualScheduler] only ticks when told to and counts registrations, which
// lets tests assert that redundant Play calls never register twice.
//
// # Import Alias
//
// Since this package has the same name as the standard library testing
// package, import it with an alias:
//
//	import motiontest "github.com/go-drift/motion/pkg/testing"
package testing
