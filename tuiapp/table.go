package tuiapp

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	"github.com/micutio/airradar/internal"
)

// Error types

var errColumnMismatch = errors.New("number of columns does not match number of format columns")

// Automated Table Formatting

type tableColumnSizingOption int

const (
	// fixed column width, regardless of table width.
	fixed tableColumnSizingOption = iota
	// relative column with, given as percentage of the total table width.
	relative
	// fill columns receive any remaining table space, evenly distributed.
	fill
)

// cellPadding is the horizontal padding the default table styles add around every cell.
const cellPadding = 2

type columnFormat struct {
	option tableColumnSizingOption
	value  float32
}

type tableFormat struct {
	columnSizes        []columnFormat
	fixedWidth         int     // fixedWidth is the total space taken up by all fixed-width columns.
	fillWidthCount     int     // fillWidthCount indicates how many columns have fill width.
	totalRelativeWidth float32 // how much width is taken by relative columns.
}

func newTableFormat(items ...columnFormat) tableFormat {
	var totalRelativeWidth float32
	fixedWidth := 0
	fillWidthCount := 0

	for _, item := range items {
		switch item.option {
		case relative:
			totalRelativeWidth += item.value
		case fixed:
			fixedWidth += int(item.value)
		case fill:
			fillWidthCount++
		}
	}

	return tableFormat{
		columnSizes:        items,
		fixedWidth:         fixedWidth,
		fillWidthCount:     fillWidthCount,
		totalRelativeWidth: totalRelativeWidth,
	}
}

// Integrated Formatted Table Type

type autoFormatTable struct {
	table  table.Model
	format tableFormat
}

// resize distributes newWidth over the columns. Relative columns take their share of the
// space left after cell padding, fill columns split whatever remains after that.
func (aft *autoFormatTable) resize(newWidth int) error {
	columns := aft.table.Columns()
	columnCount := len(columns)
	if columnCount != len(aft.format.columnSizes) {
		return fmt.Errorf(
			"table.resize: %w -> %d in table, %d in tableFormat",
			errColumnMismatch,
			columnCount,
			len(aft.format.columnSizes))
	}

	available := max(newWidth-cellPadding*columnCount, 0)
	relativeWidths := make([]int, columnCount)
	totalRelativeWidth := 0

	for idx, format := range aft.format.columnSizes {
		if format.option == relative {
			relativeWidths[idx] = int(format.value * float32(available))
			totalRelativeWidth += relativeWidths[idx]
		}
	}

	fillPerColumn := 0
	if aft.format.fillWidthCount > 0 {
		totalFillWidth := available - totalRelativeWidth - aft.format.fixedWidth
		fillPerColumn = max(totalFillWidth/aft.format.fillWidthCount, 0)
	}

	resized := make([]table.Column, columnCount)
	for idx, format := range aft.format.columnSizes {
		resized[idx] = columns[idx]
		switch format.option {
		case fixed:
			resized[idx].Width = int(format.value)
		case relative:
			resized[idx].Width = relativeWidths[idx]
		case fill:
			resized[idx].Width = fillPerColumn
		}
	}

	aft.table.SetColumns(resized)
	aft.table.SetWidth(newWidth)

	return nil
}

func (aft *autoFormatTable) SetHeight(height int) {
	aft.table.SetHeight(height)
}

// SetRows replaces the listing.
func (aft *autoFormatTable) SetRows(rows []internal.AirplaneRow) {
	tableRows := make([]table.Row, len(rows))
	for i, row := range rows {
		tableRows[i] = table.Row(row)
	}

	aft.table.SetRows(tableRows)
}

// newAirplanesTable creates the listing of all live tracks. The address and numeric columns
// are fixed, call sign and coordinates share the rest.
func newAirplanesTable(tableStyle table.Styles) autoFormatTable {
	icaoLen := 6
	altLen := 8
	fpmLen := 6
	spdLen := 5
	msgLen := 8
	initialTextLen := 15
	initialTableHeight := 5

	format := newTableFormat(
		columnFormat{fixed, float32(icaoLen)},
		columnFormat{fill, 0},
		columnFormat{fill, 0},
		columnFormat{fill, 0},
		columnFormat{fixed, float32(altLen)},
		columnFormat{fixed, float32(fpmLen)},
		columnFormat{fixed, float32(spdLen)},
		columnFormat{fixed, float32(msgLen)},
	)

	widths := []int{icaoLen, initialTextLen, initialTextLen, initialTextLen, altLen, fpmLen, spdLen, msgLen}
	columns := make([]table.Column, len(internal.AirplaneColumns))
	for i, title := range internal.AirplaneColumns {
		columns[i] = table.Column{Title: title, Width: widths[i]}
	}

	airplanesTbl := table.New(
		// table header
		table.WithColumns(columns),
		table.WithRows([]table.Row{}),
		table.WithFocused(false),
		table.WithHeight(initialTableHeight),
		table.WithStyles(tableStyle),
	)

	return autoFormatTable{
		table:  airplanesTbl,
		format: format,
	}
}
