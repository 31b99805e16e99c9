// Package testing provides a harness for exercising virtualizing panels
// without a real host.
//
// # Quick Start
//
// Create a tester over an item source, pump a layout pass and inspect the
// realized containers:
//
//	func TestMyGrid(t *testing.T) {
//	    tester := gridtest.NewPanelTesterWithT(t, items.Range(1000),
//	        virtualizing.WithItemSize(100))
//	    tester.SetSize(310, 200)
//	    tester.Pump()
//
//	    if got := tester.Keys(); len(got) == 0 {
//	        t.Fatal("expected realized containers")
//	    }
//
//	    tester.ScrollTo(5000)
//	    tester.Pump()
//	}
//
// The [RecordingFactory] counts every factory call and produces
// [FakeContainer] values with a configurable desired height.
//
// # Import Alias
//
// Since this package has the same name as the standard library testing
// package, import it with an alias:
//
//	import gridtest "github.com/go-drift/gridpanel/pkg/testing"
package testing
