package virtualizing_test

import (
	"math"
	"slices"
	"testing"

	"github.com/go-drift/gridpanel/pkg/errors"
	"github.com/go-drift/gridpanel/pkg/focus"
	"github.com/go-drift/gridpanel/pkg/graphics"
	"github.com/go-drift/gridpanel/pkg/items"
	"github.com/go-drift/gridpanel/pkg/layout"
	gridtest "github.com/go-drift/gridpanel/pkg/testing"
	"github.com/go-drift/gridpanel/pkg/virtualizing"
)

func TestPanel_EmptySource(t *testing.T) {
	tester := gridtest.NewPanelTesterWithT(t, items.Range(0))

	for _, y := range []float64{0, 500, 1e9} {
		tester.ScrollTo(y)
		tester.ForcePump()
		if h := tester.Extent().Height; h != 0 {
			t.Errorf("scroll %v: extent height = %v, want 0", y, h)
		}
		if keys := tester.Keys(); len(keys) != 0 {
			t.Errorf("scroll %v: realized %v, want none", y, keys)
		}
		if _, _, ok := tester.Panel.Window(); ok {
			t.Errorf("scroll %v: window should be empty", y)
		}
	}
	if n := len(tester.Factory.Created); n != 0 {
		t.Errorf("factory created %d containers for an empty source", n)
	}
}

func TestPanel_PartialLastRow(t *testing.T) {
	tester := gridtest.NewPanelTesterWithT(t, items.Range(5),
		virtualizing.WithItemSize(100),
		virtualizing.WithSpacing(5),
	)
	tester.SetSize(310, 600)
	tester.Pump()

	p := tester.Panel
	if p.Columns() != 3 {
		t.Fatalf("Columns = %d, want 3", p.Columns())
	}
	if p.ColumnWidth() != 100 {
		t.Errorf("ColumnWidth = %v, want 100", p.ColumnWidth())
	}
	start, end, ok := p.Window()
	if !ok || start != 0 || end != 4 {
		t.Fatalf("Window = [%d,%d] ok=%v, want [0,4]", start, end, ok)
	}
	if got := tester.Keys(); !slices.Equal(got, []int{0, 1, 2, 3, 4}) {
		t.Fatalf("Keys = %v", got)
	}

	rowHeight := p.RowHeight()
	if got := tester.Row(0); !slices.Equal(got, []int{0, 1, 2}) {
		t.Errorf("row 0 = %v, want [0 1 2]", got)
	}
	if got := tester.Row(rowHeight + 5); !slices.Equal(got, []int{3, 4}) {
		t.Errorf("row 1 = %v, want [3 4]", got)
	}
	if got, want := tester.Extent().Height, 2*(rowHeight+5)-5; got != want {
		t.Errorf("extent = %v, want %v", got, want)
	}

	b := tester.Container(4).Bounds()
	want := graphics.RectFromLTWH(105, rowHeight+5, 100, rowHeight)
	if b != want {
		t.Errorf("bounds of 4 = %+v, want %+v", b, want)
	}
}

func TestPanel_FullResetRecreatesContainers(t *testing.T) {
	list := items.NewList(rangeValues(100)...)
	tester := gridtest.NewPanelTesterWithT(t, list, virtualizing.WithItemSize(100))
	tester.SetSize(500, 100)
	tester.Pump()

	if got := tester.Keys(); !slices.Equal(got, rangeValues(10)) {
		t.Fatalf("Keys = %v, want 0..9", got)
	}
	before := make(map[int]*gridtest.FakeContainer)
	for _, k := range tester.Keys() {
		before[k] = tester.Container(k)
	}
	detachedBefore := len(tester.Host.Detached)

	list.Set(3, 42)
	if !tester.Panel.NeedsLayout() {
		t.Fatal("items change should invalidate the panel")
	}
	tester.Pump()

	if got := len(tester.Host.Detached) - detachedBefore; got != 10 {
		t.Errorf("detached %d containers, want 10", got)
	}
	if got := tester.Keys(); !slices.Equal(got, rangeValues(10)) {
		t.Fatalf("Keys after reset = %v", got)
	}
	for k, old := range before {
		if tester.Container(k) == old {
			t.Errorf("index %d kept its old container across a reset", k)
		}
	}
	if got := tester.Container(3).Item; got != 42 {
		t.Errorf("recreated container bound to %v, want 42", got)
	}
}

func TestPanel_NavigateUp(t *testing.T) {
	tester := gridtest.NewPanelTesterWithT(t, items.Range(1000),
		virtualizing.WithItemSize(100),
		virtualizing.WithSpacing(5),
	)
	tester.SetSize(310, 300)
	tester.Pump()
	p := tester.Panel

	from := p.ContainerAt(4)
	if from == nil {
		t.Fatal("index 4 should be realized")
	}
	got := p.Navigate(from, focus.TraversalDirectionUp)
	if got == nil || p.IndexOf(got) != 1 {
		t.Fatalf("Navigate(4, up) = %v, want container 1", got)
	}
	if len(tester.Host.Scrolled) != 1 || tester.Host.Scrolled[0] != got.Bounds() {
		t.Errorf("expected one scroll request with the target bounds, got %v", tester.Host.Scrolled)
	}

	// Scroll so that row 10 is the top row; the row above is not realized.
	tester.ScrollTo(10 * (p.RowHeight() + 5))
	tester.Pump()
	top := p.ContainerAt(31)
	if top == nil {
		t.Fatalf("index 31 should be realized, window %v", tester.Keys())
	}
	scrolls := len(tester.Host.Scrolled)
	if got := p.Navigate(top, focus.TraversalDirectionUp); got != nil {
		t.Errorf("Navigate to unrealized 28 = %v, want nil", got)
	}
	if len(tester.Host.Scrolled) != scrolls {
		t.Error("unresolved navigation should not request a scroll")
	}
}

func TestPanel_NavigateDirections(t *testing.T) {
	tester := gridtest.NewPanelTesterWithT(t, items.Range(100), virtualizing.WithItemSize(100))
	tester.SetSize(300, 400)
	tester.Pump()
	p := tester.Panel
	from := p.ContainerAt(4)

	tests := []struct {
		dir  focus.TraversalDirection
		want int
	}{
		{focus.TraversalDirectionUp, 1},
		{focus.TraversalDirectionDown, 7},
		{focus.TraversalDirectionLeft, 3},
		{focus.TraversalDirectionPrevious, 3},
		{focus.TraversalDirectionRight, 5},
		{focus.TraversalDirectionNext, 5},
	}
	for _, tt := range tests {
		got := p.Navigate(from, tt.dir)
		if got == nil || p.IndexOf(got) != tt.want {
			t.Errorf("Navigate(4, %v) = %v, want %d", tt.dir, got, tt.want)
		}
	}

	if p.Navigate(p.ContainerAt(0), focus.TraversalDirectionLeft) != nil {
		t.Error("navigating before index 0 should yield nil")
	}
	if p.Navigate(nil, focus.TraversalDirectionDown) != nil {
		t.Error("nil source should yield nil")
	}
	if p.Navigate(&gridtest.FakeContainer{}, focus.TraversalDirectionDown) != nil {
		t.Error("unknown source container should yield nil")
	}
}

func TestPanel_CoalescesViewportNotifications(t *testing.T) {
	tester := gridtest.NewPanelTesterWithT(t, items.Range(10000),
		virtualizing.WithItemSize(100),
		virtualizing.WithSpacing(5),
	)
	tester.SetSize(310, 600)
	tester.Pump()
	stride := tester.Panel.RowHeight() + 5

	before := tester.Panel.Stats()
	tester.ScrollTo(20 * stride)
	tester.ScrollTo(20*stride + 3)
	if n := tester.Pump(); n != 1 {
		t.Fatalf("Pump ran %d passes, want 1", n)
	}
	delta := tester.Panel.Stats().Sub(before)
	if delta.Reconciliations != 1 {
		t.Errorf("reconciliations = %d, want 1", delta.Reconciliations)
	}
	if delta.ViewportChanges != 2 {
		t.Errorf("viewport changes = %d, want 2", delta.ViewportChanges)
	}
	created := delta.Created

	// Two more notifications that resolve to the same range do no work.
	before = tester.Panel.Stats()
	tester.ScrollTo(20*stride + 1)
	tester.ScrollTo(20*stride + 2)
	tester.Pump()
	delta = tester.Panel.Stats().Sub(before)
	if delta.Reconciliations != 0 || delta.Created != 0 || delta.Evicted != 0 {
		t.Errorf("unchanged range did work: %+v", delta)
	}
	if created == 0 {
		t.Error("scrolling 20 rows should have created containers")
	}
}

func TestPanel_ReconcileIsIdempotent(t *testing.T) {
	tester := gridtest.NewPanelTesterWithT(t, items.Range(50))
	p := tester.Panel

	first := p.Reconcile(3, 12)
	before := p.Stats()
	second := p.Reconcile(3, 12)
	delta := p.Stats().Sub(before)

	if delta.Created != 0 || delta.Evicted != 0 || delta.Reconciliations != 0 {
		t.Errorf("repeated reconcile did work: %+v", delta)
	}
	if delta.FastPaths != 1 {
		t.Errorf("FastPaths = %d, want 1", delta.FastPaths)
	}
	if !slices.Equal(first, second) {
		t.Error("repeated reconcile returned a different set")
	}
}

func TestPanel_ReconcileClampsAndSorts(t *testing.T) {
	tester := gridtest.NewPanelTesterWithT(t, items.Range(8))
	p := tester.Panel

	got := p.Reconcile(-5, 3)
	assertSortedUnique(t, p, got)
	if start, end, _ := p.Window(); start != 0 || end != 3 {
		t.Errorf("Window = [%d,%d], want [0,3]", start, end)
	}

	got = p.Reconcile(2, 100)
	assertSortedUnique(t, p, got)
	if len(got) != 6 {
		t.Errorf("realized %d, want 6", len(got))
	}
	if p.ContainerAt(0) != nil || p.ContainerAt(1) != nil {
		t.Error("indexes below the window should be evicted")
	}

	got = p.Reconcile(20, 30)
	if len(got) != 0 {
		t.Errorf("window past the end realized %d containers", len(got))
	}
	if _, _, ok := p.Window(); ok {
		t.Error("window past the end should be empty")
	}
}

func TestPanel_LayoutProperties(t *testing.T) {
	sizes := []int{0, 1, 2, 5, 17, 100, 1001}
	scrolls := []float64{0, 137, 2000, 1e7}
	for _, n := range sizes {
		for _, y := range scrolls {
			tester := gridtest.NewPanelTester(items.Range(n),
				virtualizing.WithItemSize(90),
				virtualizing.WithSpacing(4),
			)
			tester.SetSize(400, 250)
			tester.ScrollTo(y)
			tester.Pump()
			p := tester.Panel

			start, end, ok := p.Window()
			if n == 0 && ok {
				t.Errorf("n=%d y=%v: window should be empty", n, y)
			}
			if ok && (start < 0 || start > end || end > n-1) {
				t.Errorf("n=%d y=%v: window [%d,%d] out of bounds", n, y, start, end)
			}

			realized := p.RealizedContainers()
			assertSortedUnique(t, p, realized)

			reqStart, _ := p.RequiredRange()
			columns := p.Columns()
			stride := p.RowHeight() + p.Spacing()
			topOffset := float64(reqStart/columns) * stride
			for _, c := range realized {
				k := p.IndexOf(c)
				if k < start || k > end {
					t.Errorf("n=%d y=%v: key %d outside window [%d,%d]", n, y, k, start, end)
				}
				r, col := (k-reqStart)/columns, k%columns
				wantLeft := float64(col) * (p.ColumnWidth() + p.Spacing())
				wantTop := topOffset + float64(r)*stride
				b := c.Bounds()
				if !graphics.NearlyEqual(b.Left, wantLeft) || !graphics.NearlyEqual(b.Top, wantTop) {
					t.Errorf("n=%d y=%v: key %d at (%v,%v), want (%v,%v)", n, y, k, b.Left, b.Top, wantLeft, wantTop)
				}
				if !graphics.NearlyEqual(b.Width(), p.ColumnWidth()) || !graphics.NearlyEqual(b.Height(), p.RowHeight()) {
					t.Errorf("n=%d y=%v: key %d size %v", n, y, k, b.Size())
				}
			}
			if len(realized) != len(tester.Host.Attached)-len(tester.Host.Detached) {
				t.Errorf("n=%d y=%v: realized set differs from attached children", n, y)
			}
			tester.Cleanup()
		}
	}
}

func TestPanel_RowHeightOnlyGrows(t *testing.T) {
	tester := gridtest.NewPanelTesterWithT(t, items.Range(1000), virtualizing.WithItemSize(100))
	tester.Factory.HeightFunc = func(index int) float64 {
		if index >= 200 {
			return 80
		}
		return 40
	}
	tester.SetSize(300, 400)
	tester.Pump()
	if h := tester.Panel.RowHeight(); h != 40 {
		t.Fatalf("RowHeight = %v, want 40", h)
	}

	tester.ScrollTo(100 * 40)
	tester.Pump()
	if h := tester.Panel.RowHeight(); h != 80 {
		t.Fatalf("RowHeight after taller rows = %v, want 80", h)
	}

	tester.ScrollTo(0)
	tester.Pump()
	if h := tester.Panel.RowHeight(); h != 80 {
		t.Errorf("RowHeight shrank to %v", h)
	}
}

func TestPanel_LearnsRowHeightFromFirstTwoItems(t *testing.T) {
	tester := gridtest.NewPanelTesterWithT(t, items.Range(100), virtualizing.WithItemSize(100))
	tester.Factory.HeightFunc = func(index int) float64 { return float64(30 + index) }
	tester.SetSize(300, 30)
	tester.ScrollTo(31 * 20)
	tester.Pump()

	created := tester.Factory.Created
	if len(created) < 2 || created[0].Index != 0 || created[1].Index != 1 {
		t.Fatalf("first containers should be 0 and 1, got %d created", len(created))
	}
	if tester.Panel.RowHeight() < 31 {
		t.Errorf("RowHeight = %v, want at least 31", tester.Panel.RowHeight())
	}
	if tester.Panel.ContainerAt(0) != nil {
		t.Error("sample containers outside the window should be evicted")
	}
}

func TestPanel_NonPositiveItemSizeUsesFallback(t *testing.T) {
	tester := gridtest.NewPanelTesterWithT(t, items.Range(20), virtualizing.WithItemSize(0))
	tester.SetSize(500, 400)
	tester.Pump()
	if c := tester.Panel.Columns(); c != 4 {
		t.Errorf("Columns = %d, want 4", c)
	}
	if w := tester.Panel.ColumnWidth(); w != 125 {
		t.Errorf("ColumnWidth = %v, want 125", w)
	}
}

func TestPanel_UnboundedWidth(t *testing.T) {
	p := virtualizing.New(items.Range(3), &gridtest.RecordingFactory{})
	p.SetViewport(graphics.RectFromLTWH(0, 0, 100, 1000))
	size := p.Measure(graphics.Size{Width: math.Inf(1), Height: math.Inf(1)})
	if p.Columns() != 1 || p.ColumnWidth() != virtualizing.DefaultItemSize {
		t.Errorf("columns=%d width=%v, want 1/%v", p.Columns(), p.ColumnWidth(), virtualizing.DefaultItemSize)
	}
	if size.Height != 3*gridtest.DefaultRowHeight {
		t.Errorf("height = %v, want %v", size.Height, 3*gridtest.DefaultRowHeight)
	}
}

func TestPanel_ZeroHeightRowsRealizeOneRow(t *testing.T) {
	tester := gridtest.NewPanelTesterWithT(t, items.Range(50), virtualizing.WithItemSize(100))
	tester.Factory.HeightFunc = func(int) float64 { return 0 }
	tester.SetSize(300, 400)
	tester.Pump()
	if got := tester.Keys(); !slices.Equal(got, []int{0, 1, 2}) {
		t.Errorf("Keys = %v, want first row", got)
	}
	if h := tester.Extent().Height; h != 0 {
		t.Errorf("extent = %v, want 0", h)
	}
}

func TestPanel_ScrolledPastEndEvictsEverything(t *testing.T) {
	tester := gridtest.NewPanelTesterWithT(t, items.Range(10), virtualizing.WithItemSize(100))
	tester.SetSize(500, 100)
	tester.Pump()
	if len(tester.Keys()) != 10 {
		t.Fatalf("Keys = %v", tester.Keys())
	}
	tester.ScrollTo(10000)
	tester.Pump()
	if got := tester.Keys(); len(got) != 0 {
		t.Errorf("Keys = %v, want none", got)
	}
}

func TestPanel_PropertyChangesRelayout(t *testing.T) {
	tester := gridtest.NewPanelTesterWithT(t, items.Range(30), virtualizing.WithItemSize(100))
	tester.SetSize(310, 400)
	tester.Pump()
	if tester.Panel.Columns() != 3 {
		t.Fatalf("Columns = %d", tester.Panel.Columns())
	}

	tester.Panel.SetItemSize(150)
	if n := tester.Pump(); n != 1 {
		t.Fatalf("SetItemSize should schedule a layout, ran %d", n)
	}
	if tester.Panel.Columns() != 2 {
		t.Errorf("Columns after SetItemSize = %d, want 2", tester.Panel.Columns())
	}

	tester.Panel.SetSpacing(10)
	tester.Pump()
	if got, want := tester.Panel.ColumnWidth(), 150.0; got != want {
		t.Errorf("ColumnWidth = %v, want %v", got, want)
	}

	tester.Panel.SetSpacing(10)
	if tester.Pump() != 0 {
		t.Error("setting the same spacing should not schedule a layout")
	}
}

func TestPanel_FactoryPanicIsReported(t *testing.T) {
	rec := gridtest.CaptureErrors(t)
	tester := gridtest.NewPanelTesterWithT(t, items.Range(9), virtualizing.WithItemSize(100))
	tester.Factory.PanicOn = func(index int) bool { return index == 2 }
	tester.SetSize(300, 400)
	tester.Pump()

	if got := tester.Keys(); slices.Contains(got, 2) || len(got) != 8 {
		t.Errorf("Keys = %v, want all but 2", got)
	}
	errs := rec.Errors()
	if len(errs) != 1 {
		t.Fatalf("reported %d errors, want 1", len(errs))
	}
	if errs[0].Kind != errors.KindFactory || errs[0].Index != 2 {
		t.Errorf("error = %v", errs[0])
	}
	var pe *errors.PanicError
	if !errors.As(errs[0], &pe) {
		t.Error("expected the panic to be wrapped")
	}
	if tester.Panel.Stats().FactoryFailures != 1 {
		t.Errorf("FactoryFailures = %d", tester.Panel.Stats().FactoryFailures)
	}
	// Neighbours keep their grid positions.
	if b := tester.Container(3).Bounds(); b.Left != 0 || b.Top != gridtest.DefaultRowHeight {
		t.Errorf("bounds of 3 = %+v", b)
	}
}

func TestPanel_NilContainerIsReported(t *testing.T) {
	rec := gridtest.CaptureErrors(t)
	factory := virtualizing.FactoryFunc(func(any, int) layout.Container { return nil })
	p := virtualizing.New(items.Range(3), factory)
	if got := p.Reconcile(0, 2); len(got) != 0 {
		t.Errorf("realized %d containers from a nil factory", len(got))
	}
	errs := rec.Errors()
	if len(errs) != 3 || !errors.Is(errs[0], errors.ErrNilContainer) {
		t.Errorf("errors = %v", errs)
	}
}

func TestPanel_ReusedContainerIsRejected(t *testing.T) {
	rec := gridtest.CaptureErrors(t)
	shared := &gridtest.FakeContainer{}
	factory := virtualizing.FactoryFunc(func(any, int) layout.Container { return shared })
	p := virtualizing.New(items.Range(3), factory)
	if got := p.Reconcile(0, 2); len(got) != 1 {
		t.Errorf("realized %d, want 1", len(got))
	}
	if len(rec.Errors()) != 2 || !errors.Is(rec.Errors()[0], virtualizing.ErrContainerInUse) {
		t.Errorf("errors = %v", rec.Errors())
	}
}

func TestPanel_InvalidationDuringReconcileIsDeferred(t *testing.T) {
	tester := gridtest.NewPanelTesterWithT(t, items.Range(100), virtualizing.WithItemSize(100))
	tester.SetSize(300, 200)
	tester.Pump()

	fired := false
	var nested int
	tester.Factory.OnCreate = func(c *gridtest.FakeContainer) {
		if fired {
			return
		}
		fired = true
		nested = len(tester.Panel.Reconcile(0, 1000))
		tester.Panel.InvalidateAll()
	}
	tester.ScrollTo(1000)
	createdBefore := len(tester.Factory.Created)
	tester.Pump()

	if !fired {
		t.Fatal("OnCreate never ran")
	}
	if got := len(tester.Factory.Created) - createdBefore; got > 12 {
		t.Errorf("nested reconcile created extra containers: %d", got)
	}
	if nested > 12 {
		t.Errorf("nested reconcile returned %d containers", nested)
	}
	if !tester.Owner.NeedsLayout() {
		t.Fatal("reset raised mid-reconcile should wait for the next pass")
	}

	old := tester.Container(tester.Keys()[0])
	tester.Pump()
	if tester.Container(tester.Keys()[0]) == old {
		t.Error("deferred reset should replace containers on the next pass")
	}
}

type preparedHookFactory struct {
	*gridtest.RecordingFactory
	onPrepared func()
}

func (f *preparedHookFactory) ContainerPrepared(c layout.Container, item any, index int) {
	f.RecordingFactory.ContainerPrepared(c, item, index)
	if f.onPrepared != nil {
		f.onPrepared()
	}
}

func TestPanel_InvalidationDuringPassWithoutOwner(t *testing.T) {
	factory := &preparedHookFactory{RecordingFactory: &gridtest.RecordingFactory{}}
	p := virtualizing.New(items.Range(100), factory, virtualizing.WithItemSize(100))
	t.Cleanup(p.Close)
	available := graphics.Unbounded(300)
	pass := func() {
		size := p.Measure(available)
		p.Arrange(available.WithHeight(size.Height))
	}

	p.SetViewport(graphics.RectFromLTWH(0, 0, 300, 200))
	pass()
	if p.NeedsLayout() {
		t.Fatal("a pass without invalidations should leave the panel clean")
	}

	fired := false
	factory.onPrepared = func() {
		if !fired {
			fired = true
			p.InvalidateAll()
		}
	}
	p.SetViewport(graphics.RectFromLTWH(0, 500, 300, 200))
	pass()
	if !fired {
		t.Fatal("ContainerPrepared never ran")
	}
	if !p.NeedsLayout() {
		t.Fatal("invalidation raised during the pass was dropped")
	}

	first := p.ContainerAt(30)
	if first == nil {
		t.Fatal("index 30 should be realized")
	}
	pass()
	if p.NeedsLayout() {
		t.Error("the follow-up pass should leave the panel clean")
	}
	if p.ContainerAt(30) == first {
		t.Error("the deferred reset should replace containers on the follow-up pass")
	}
}

func TestPanel_ObservableSourceAndClose(t *testing.T) {
	list := items.NewList(1, 2, 3)
	tester := gridtest.NewPanelTester(list)
	tester.Pump()
	if len(tester.Keys()) != 3 {
		t.Fatalf("Keys = %v", tester.Keys())
	}

	list.Append(4)
	if tester.Pump() != 1 || len(tester.Keys()) != 4 {
		t.Fatalf("append should relayout to 4 items, got %v", tester.Keys())
	}

	tester.Cleanup()
	if len(tester.Panel.Children()) != 0 {
		t.Error("Close should detach every container")
	}
	list.Append(5)
	if tester.Owner.NeedsLayout() {
		t.Error("closed panel should not react to item changes")
	}
}

func TestPanel_SetSourceReplacesContainers(t *testing.T) {
	tester := gridtest.NewPanelTesterWithT(t, items.Range(4))
	tester.Pump()
	tester.Panel.SetSource(items.NewList("a", "b"))
	tester.Pump()
	if got := tester.Keys(); !slices.Equal(got, []int{0, 1}) {
		t.Errorf("Keys = %v", got)
	}
	if item := tester.Container(1).Item; item != "b" {
		t.Errorf("item = %v, want b", item)
	}
	tester.Panel.SetSource(nil)
	tester.Pump()
	if tester.Panel.ItemCount() != 0 || len(tester.Keys()) != 0 {
		t.Error("nil source should behave as empty")
	}
}

func TestPanel_BoundsForIndex(t *testing.T) {
	tester := gridtest.NewPanelTesterWithT(t, items.Range(100),
		virtualizing.WithItemSize(100),
		virtualizing.WithSpacing(5),
	)
	tester.SetSize(310, 200)
	tester.Pump()

	got, ok := tester.Panel.BoundsForIndex(7)
	want := graphics.RectFromLTWH(105, 2*(gridtest.DefaultRowHeight+5), 100, gridtest.DefaultRowHeight)
	if !ok || got != want {
		t.Errorf("BoundsForIndex(7) = %+v,%v want %+v", got, ok, want)
	}
	if _, ok := tester.Panel.BoundsForIndex(100); ok {
		t.Error("index past the end should have no bounds")
	}

	// Realized containers sit exactly where BoundsForIndex predicts.
	for _, k := range tester.Keys() {
		b, _ := tester.Panel.BoundsForIndex(k)
		if b != tester.Container(k).Bounds() {
			t.Errorf("index %d: predicted %+v, arranged %+v", k, b, tester.Container(k).Bounds())
		}
	}
}

func TestPanel_FactoryHooksRunInOrder(t *testing.T) {
	tester := gridtest.NewPanelTesterWithT(t, items.Range(6), virtualizing.WithItemSize(100))
	tester.SetSize(300, 400)
	tester.Pump()

	f := tester.Factory
	if f.Prepares != len(f.Created) || f.Completions != len(f.Created) {
		t.Errorf("created=%d prepares=%d completions=%d", len(f.Created), f.Prepares, f.Completions)
	}
	for _, c := range f.Created {
		if !c.Prepared || !c.Completed {
			t.Errorf("container %d not fully prepared", c.Index)
		}
	}
	if len(tester.Host.Attached) != len(f.Created) {
		t.Errorf("attached %d, created %d", len(tester.Host.Attached), len(f.Created))
	}
}

func assertSortedUnique(t *testing.T, p *virtualizing.Panel, cs []layout.Container) {
	t.Helper()
	seen := make(map[int]bool)
	prev := -1
	for _, c := range cs {
		k := p.IndexOf(c)
		if seen[k] {
			t.Errorf("duplicate key %d", k)
		}
		seen[k] = true
		if k <= prev {
			t.Errorf("keys not ascending: %d after %d", k, prev)
		}
		prev = k
	}
}

func rangeValues(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}
