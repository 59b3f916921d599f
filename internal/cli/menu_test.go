package cli

import (
	"bytes"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dparodi/gestock/internal/product/service"
	"github.com/dparodi/gestock/internal/product/store"
	"github.com/stretchr/testify/assert"
)

func newTestMenu(t *testing.T, script string) (*Menu, *bytes.Buffer, service.InventoryService) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	path := filepath.Join(t.TempDir(), "datos_stock.json")
	svc := service.NewService(store.NewFileStore(path, logger), logger)
	out := &bytes.Buffer{}
	return NewMenu(svc, strings.NewReader(script), out), out, svc
}

func Test_Menu_AddAndList(t *testing.T) {
	// given: add a product, list, exit
	script := "1\nP1\nMouse\nPeripherals\n19.99\n5\n4\n0\n"
	menu, out, svc := newTestMenu(t, script)
	// when
	menu.Run()
	// then
	output := out.String()
	assert.Contains(t, output, `Product "Mouse" added successfully.`)
	assert.Contains(t, output, "CODE")
	assert.Contains(t, output, "Mouse")
	assert.Contains(t, output, "$19.99")
	assert.Contains(t, output, "Goodbye!")
	assert.Len(t, svc.List(), 1)
}

func Test_Menu_RejectsInvalidNumberThenRetries(t *testing.T) {
	// given: a non-numeric price followed by a valid one
	script := "1\nP1\nMouse\nPeripherals\nabc\n19.99\n5\n0\n"
	menu, out, svc := newTestMenu(t, script)
	// when
	menu.Run()
	// then
	assert.Contains(t, out.String(), "Please enter a valid number.")
	assert.Len(t, svc.List(), 1)
}

func Test_Menu_DeleteNeedsConfirmation(t *testing.T) {
	// given: add, then answer "n" to the delete confirmation
	script := "1\nP1\nMouse\nPeripherals\n19.99\n5\n3\nP1\nn\n0\n"
	menu, out, svc := newTestMenu(t, script)
	// when
	menu.Run()
	// then
	assert.Contains(t, out.String(), "Operation cancelled.")
	assert.Len(t, svc.List(), 1, "an unconfirmed delete must not remove anything")
}

func Test_Menu_UpdatePriceOnly(t *testing.T) {
	// given: add, update answering yes to price and no to quantity
	script := "1\nP1\nMouse\nPeripherals\n19.99\n5\n2\nP1\ny\n24.99\nn\n0\n"
	menu, out, svc := newTestMenu(t, script)
	// when
	menu.Run()
	// then
	assert.Contains(t, out.String(), `Product "Mouse" updated successfully.`)
	found, err := svc.FindByCode("P1")
	assert.NoError(t, err)
	assert.Equal(t, 24.99, found.Price)
	assert.Equal(t, 5, found.Quantity)
}

func Test_Menu_ValidationErrorIsReported(t *testing.T) {
	// given: a digits-only name
	script := "1\nP1\n12345\nPeripherals\n19.99\n5\n0\n"
	menu, out, svc := newTestMenu(t, script)
	// when
	menu.Run()
	// then
	assert.Contains(t, out.String(), "The name must not be empty or consist only of digits.")
	assert.Empty(t, svc.List())
}

func Test_Menu_FindByNameReportsMisses(t *testing.T) {
	// given
	script := "6\nmouse\n0\n"
	menu, out, _ := newTestMenu(t, script)
	// when
	menu.Run()
	// then
	assert.Contains(t, out.String(), `No products found matching "mouse".`)
}

func Test_Menu_EndsOnEOF(t *testing.T) {
	// given: input ends without an explicit exit
	menu, _, _ := newTestMenu(t, "4\n")
	// when / then: must return, not loop forever
	menu.Run()
}
