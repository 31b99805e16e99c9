package tui

import (
	"fmt"

	"github.com/go-drift/gridpanel/pkg/layout"
	"github.com/go-drift/gridpanel/pkg/text"
)

// Cell is the container realized for one item.
type Cell struct {
	text.Label

	// Index is the item index the cell is bound to.
	Index int
}

// cellFactory creates blank cells and binds them to items in PrepareContainer.
type cellFactory struct {
	format string
}

func (f cellFactory) CreateContainer(_ any, index, _ int) layout.Container {
	c := &Cell{Index: index}
	c.Measurer = text.CellMeasurer{}
	return c
}

func (f cellFactory) PrepareContainer(container layout.Container, item any, index int) {
	c, ok := container.(*Cell)
	if !ok {
		return
	}
	c.Index = index
	c.Text = fmt.Sprintf(f.format, item)
}

// ContainerPrepared has nothing left to do for text cells.
func (f cellFactory) ContainerPrepared(layout.Container, any, int) {}
