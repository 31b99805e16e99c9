package virtualizing

import (
	"log/slog"
	"slices"

	"github.com/go-drift/gridpanel/pkg/errors"
	"github.com/go-drift/gridpanel/pkg/layout"
)

// ErrContainerInUse is reported when a factory hands out a container that is
// already realized for another index.
var ErrContainerInUse = errors.New("container is already realized")

// Reconcile makes the realized set match the index range [start, end],
// clamped to the item source, and returns the realized containers sorted by
// index.
//
// A request identical to the previously served one is answered from the
// current set without creating or evicting anything, unless a full reset is
// pending. Otherwise containers outside the range (or all of them, after
// InvalidateAll) are detached and each missing index is created through the
// factory.
//
// Reconcile is not reentrant. A call made from inside a factory hook returns
// the set as it stands; invalidations raised there apply to the next pass.
func (p *Panel) Reconcile(start, end int) []layout.Container {
	if p.reconciling {
		return p.sorted()
	}
	if p.served && !p.reset && start == p.reqStart && end == p.reqEnd {
		p.stats.FastPaths++
		return p.sorted()
	}

	p.reconciling = true
	defer func() { p.reconciling = false }()

	clearAll := p.reset
	p.reset = false
	p.served = true
	p.reqStart, p.reqEnd = start, end

	count := p.source.Len()
	lo := max(0, start)
	hi := min(end, count-1)
	p.winStart, p.winEnd = lo, hi

	kept := p.children[:0:0]
	evicted := 0
	for _, c := range p.children {
		key := p.keys[c]
		if clearAll || key < lo || key > hi {
			p.forget(c)
			p.host.ChildDetached(c)
			evicted++
			continue
		}
		kept = append(kept, c)
	}
	p.children = kept

	created := 0
	if count > 0 {
		for i := lo; i <= hi; i++ {
			if _, ok := p.byKey[i]; ok {
				continue
			}
			if p.createElement(i) {
				created++
			}
		}
	}

	p.stats.Reconciliations++
	p.stats.Created += created
	p.stats.Evicted += evicted
	p.logger.Debug("reconcile",
		slog.Int("start", lo), slog.Int("end", hi),
		slog.Bool("reset", clearAll),
		slog.Int("created", created), slog.Int("evicted", evicted),
		slog.Int("realized", len(p.children)))

	return p.sorted()
}

// Window returns the clamped index range of the last reconciliation.
// ok is false when the window is empty.
func (p *Panel) Window() (start, end int, ok bool) {
	if p.winEnd < p.winStart {
		return 0, -1, false
	}
	return p.winStart, p.winEnd, true
}

// createElement realizes index through the factory. Failures are reported
// and leave the index unrealized for this pass.
func (p *Panel) createElement(index int) bool {
	var (
		item      any
		container layout.Container
	)
	if !p.guard("virtualizing.createContainer", index, func() {
		item = p.source.At(index)
		container = p.factory.CreateContainer(item, index, index)
	}) {
		return false
	}
	if container == nil {
		p.reportFactory("virtualizing.createContainer", index, errors.ErrNilContainer)
		return false
	}
	if _, taken := p.keys[container]; taken {
		p.reportFactory("virtualizing.createContainer", index, ErrContainerInUse)
		return false
	}

	p.keys[container] = index
	p.byKey[index] = container
	if !p.guard("virtualizing.prepareContainer", index, func() {
		p.factory.PrepareContainer(container, item, index)
	}) {
		p.forget(container)
		return false
	}

	p.children = append(p.children, container)
	p.host.ChildAttached(container)
	p.guard("virtualizing.containerPrepared", index, func() {
		p.factory.ContainerPrepared(container, item, index)
	})
	return true
}

// guard runs a factory hook. A panic is reported as a factory error for
// index and counted as a failure.
func (p *Panel) guard(op string, index int, fn func()) bool {
	if errors.Guard(op, errors.KindFactory, index, fn) != nil {
		p.stats.FactoryFailures++
		return false
	}
	return true
}

func (p *Panel) reportFactory(op string, index int, err error) {
	p.stats.FactoryFailures++
	errors.Report(&errors.GridError{Op: op, Kind: errors.KindFactory, Index: index, Err: err})
}

// forget drops a container from the key side table.
func (p *Panel) forget(c layout.Container) {
	if key, ok := p.keys[c]; ok {
		if p.byKey[key] == c {
			delete(p.byKey, key)
		}
		delete(p.keys, c)
	}
}

// sorted returns the attached containers ordered by recycle key.
func (p *Panel) sorted() []layout.Container {
	out := slices.Clone(p.children)
	slices.SortStableFunc(out, func(a, b layout.Container) int {
		return p.keys[a] - p.keys[b]
	})
	return out
}
