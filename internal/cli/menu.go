// Package cli implements the interactive text menu of the inventory tool.
// It collects raw input, renders tables and maps service errors to
// messages; all decisions live in the service layer.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	producterrors "github.com/dparodi/gestock/internal/product/errors"
	"github.com/dparodi/gestock/internal/product/service"
	"github.com/dparodi/gestock/internal/product/store"
)

const menuText = `
=== Stock Management ===
1. Add product
2. Update product
3. Delete product
4. List all products
5. Find product by code
6. Find products by name
0. Exit
`

// Menu drives an interactive session over an input/output pair.
type Menu struct {
	service service.InventoryService
	in      *bufio.Scanner
	out     io.Writer
}

// NewMenu creates a Menu reading commands from in and writing to out.
func NewMenu(svc service.InventoryService, in io.Reader, out io.Writer) *Menu {
	return &Menu{
		service: svc,
		in:      bufio.NewScanner(in),
		out:     out,
	}
}

// Run loops over the main menu until the user exits or input ends.
func (m *Menu) Run() {
	for {
		fmt.Fprint(m.out, menuText)
		option, ok := m.prompt("Select an option")
		if !ok {
			return
		}

		switch strings.TrimSpace(option) {
		case "1":
			m.addProduct()
		case "2":
			m.updateProduct()
		case "3":
			m.deleteProduct()
		case "4":
			m.listProducts()
		case "5":
			m.findByCode()
		case "6":
			m.findByName()
		case "0":
			fmt.Fprintln(m.out, "Goodbye!")
			return
		default:
			fmt.Fprintln(m.out, "Invalid option, please try again.")
		}
	}
}

func (m *Menu) addProduct() {
	code, ok := m.prompt("Product code")
	if !ok {
		return
	}
	name, ok := m.prompt("Product name")
	if !ok {
		return
	}
	category, ok := m.prompt("Category")
	if !ok {
		return
	}
	price, ok := m.promptFloat("Price")
	if !ok {
		return
	}
	quantity, ok := m.promptInt("Quantity in stock")
	if !ok {
		return
	}

	product, err := m.service.Add(code, name, category, price, quantity)
	if err != nil {
		fmt.Fprintln(m.out, errorMessage(err))
		return
	}
	fmt.Fprintf(m.out, "Product %q added successfully.\n", product.Name)
}

func (m *Menu) updateProduct() {
	code, ok := m.prompt("Code of the product to update")
	if !ok {
		return
	}

	current, err := m.service.FindByCode(code)
	if err != nil {
		fmt.Fprintln(m.out, errorMessage(err))
		return
	}
	fmt.Fprintf(m.out, "Current product: %s (price $%.2f, quantity %d)\n",
		current.Name, current.Price, current.Quantity)

	var price *float64
	var quantity *int

	if m.confirm("Change price?") {
		v, ok := m.promptFloat("New price")
		if !ok {
			return
		}
		price = &v
	}
	if m.confirm("Change quantity?") {
		v, ok := m.promptInt("New quantity")
		if !ok {
			return
		}
		quantity = &v
	}

	updated, err := m.service.Update(code, price, quantity)
	if err != nil {
		fmt.Fprintln(m.out, errorMessage(err))
		return
	}
	fmt.Fprintf(m.out, "Product %q updated successfully.\n", updated.Name)
}

func (m *Menu) deleteProduct() {
	code, ok := m.prompt("Code of the product to delete")
	if !ok {
		return
	}

	product, err := m.service.FindByCode(code)
	if err != nil {
		fmt.Fprintln(m.out, errorMessage(err))
		return
	}
	fmt.Fprintf(m.out, "About to delete: %s (code %s, category %s)\n",
		product.Name, product.Code, product.Category)

	if !m.confirm("Are you sure?") {
		fmt.Fprintln(m.out, "Operation cancelled.")
		return
	}

	removed, err := m.service.Delete(code)
	if err != nil {
		fmt.Fprintln(m.out, errorMessage(err))
		return
	}
	fmt.Fprintf(m.out, "Product %q deleted successfully.\n", removed.Name)
}

func (m *Menu) listProducts() {
	m.printTable(m.service.List())
}

func (m *Menu) findByCode() {
	code, ok := m.prompt("Product code")
	if !ok {
		return
	}
	product, err := m.service.FindByCode(code)
	if err != nil {
		fmt.Fprintln(m.out, errorMessage(err))
		return
	}
	m.printTable([]store.Product{*product})
}

func (m *Menu) findByName() {
	query, ok := m.prompt("Name (or part of the name)")
	if !ok {
		return
	}
	matches := m.service.FindByName(query)
	if len(matches) == 0 {
		fmt.Fprintf(m.out, "No products found matching %q.\n", query)
		return
	}
	fmt.Fprintf(m.out, "Found %d product(s):\n", len(matches))
	m.printTable(matches)
}

// printTable renders the products as an aligned table.
func (m *Menu) printTable(products []store.Product) {
	if len(products) == 0 {
		fmt.Fprintln(m.out, "No products to show.")
		return
	}

	w := tabwriter.NewWriter(m.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CODE\tNAME\tCATEGORY\tPRICE\tQUANTITY")
	for _, p := range products {
		fmt.Fprintf(w, "%s\t%s\t%s\t$%.2f\t%d\n", p.Code, p.Name, p.Category, p.Price, p.Quantity)
	}
	_ = w.Flush()
}

// prompt reads one line. ok is false when input ends.
func (m *Menu) prompt(label string) (string, bool) {
	fmt.Fprintf(m.out, "%s: ", label)
	if !m.in.Scan() {
		return "", false
	}
	return m.in.Text(), true
}

// promptFloat re-asks until the input parses as a number.
func (m *Menu) promptFloat(label string) (float64, bool) {
	for {
		raw, ok := m.prompt(label)
		if !ok {
			return 0, false
		}
		value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			fmt.Fprintln(m.out, "Please enter a valid number.")
			continue
		}
		return value, true
	}
}

// promptInt re-asks until the input parses as an integer.
func (m *Menu) promptInt(label string) (int, bool) {
	for {
		raw, ok := m.prompt(label)
		if !ok {
			return 0, false
		}
		value, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			fmt.Fprintln(m.out, "Please enter a whole number.")
			continue
		}
		return value, true
	}
}

// confirm asks a yes/no question; anything but y/yes counts as no.
func (m *Menu) confirm(label string) bool {
	answer, ok := m.prompt(label + " [y/N]")
	if !ok {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

// errorMessage maps service errors to user-facing messages.
func errorMessage(err error) string {
	switch {
	case errors.Is(err, producterrors.ErrEmptyCode):
		return "The code must not be empty."
	case errors.Is(err, producterrors.ErrCodeExists):
		return "That code already exists in the system."
	case errors.Is(err, producterrors.ErrInvalidName):
		return "The name must not be empty or consist only of digits."
	case errors.Is(err, producterrors.ErrEmptyCategory):
		return "The category must not be empty."
	case errors.Is(err, producterrors.ErrInvalidPrice):
		return "The price must be greater than 0."
	case errors.Is(err, producterrors.ErrInvalidQuantity):
		return "The quantity must be 0 or greater."
	case errors.Is(err, producterrors.ErrProductNotFound):
		return "Product not found."
	case errors.Is(err, producterrors.ErrNoChanges):
		return "No changes were specified."
	case errors.Is(err, producterrors.ErrSaveFailed):
		return "Could not save the changes to the data file."
	default:
		return "Unexpected error: " + err.Error()
	}
}
