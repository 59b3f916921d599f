// Package e2e provides end-to-end tests for the stock management tool.
// The suite wires the real JSON file store and the inventory service
// together against a data file in a temporary directory, covering a full
// add/update/delete/search session and a reload in a fresh service to
// prove the collection actually reaches disk. It uses `testify/suite`
// for lifecycle management (`SetupTest` gives every test its own file).
package e2e

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	producterrors "github.com/dparodi/gestock/internal/product/errors"
	"github.com/dparodi/gestock/internal/product/service"
	"github.com/dparodi/gestock/internal/product/store"
	"github.com/stretchr/testify/suite"
)

// InventoryE2ESuite is a test suite for end-to-end tests of the inventory tool.
type InventoryE2ESuite struct {
	suite.Suite
	dataFile string
	logger   *slog.Logger
	svc      service.InventoryService
}

// SetupTest creates a fresh data file location and a service bound to it.
func (s *InventoryE2ESuite) SetupTest() {
	s.dataFile = filepath.Join(s.T().TempDir(), "datos_stock.json")
	s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	s.svc = service.NewService(store.NewFileStore(s.dataFile, s.logger), s.logger)
}

// reload builds a second service over the same data file, simulating a
// process restart.
func (s *InventoryE2ESuite) reload() service.InventoryService {
	return service.NewService(store.NewFileStore(s.dataFile, s.logger), s.logger)
}

func (s *InventoryE2ESuite) TestFullSession() {
	// given: a session that adds, updates and deletes products
	_, err := s.svc.Add("P1", "Mouse", "Peripherals", 19.99, 5)
	s.Require().NoError(err)
	_, err = s.svc.Add("P2", "Monitor", "Peripherals", 120, 3)
	s.Require().NoError(err)
	_, err = s.svc.Add("P3", "Teclado", "Periféricos", 45.5, 8)
	s.Require().NoError(err)

	// when
	updated, err := s.svc.Update("P1", floatPtr(24.99), nil)
	s.Require().NoError(err)
	removed, err := s.svc.Delete("P2")
	s.Require().NoError(err)

	// then
	s.Equal(24.99, updated.Price)
	s.Equal(5, updated.Quantity, "quantity must be untouched by a price-only update")
	s.Equal("Monitor", removed.Name)

	list := s.svc.List()
	s.Require().Len(list, 2)
	s.Equal("P1", list[0].Code)
	s.Equal("P3", list[1].Code)

	matches := s.svc.FindByName("te")
	s.Require().Len(matches, 1)
	s.Equal("Teclado", matches[0].Name)
}

func (s *InventoryE2ESuite) TestReloadSeesPersistedState() {
	// given
	_, err := s.svc.Add("P1", "Mouse", "Peripherals", 19.99, 5)
	s.Require().NoError(err)
	_, err = s.svc.Add("P2", "Ratón inalámbrico", "Periféricos", 35, 2)
	s.Require().NoError(err)
	_, err = s.svc.Update("P1", nil, intPtr(7))
	s.Require().NoError(err)

	// when: a fresh service loads the same file
	reloaded := s.reload()

	// then
	list := reloaded.List()
	s.Require().Len(list, 2)
	s.Equal("P1", list[0].Code)
	s.Equal(7, list[0].Quantity)
	s.Equal("Ratón inalámbrico", list[1].Name, "non-ASCII names must survive the round trip")

	found, err := reloaded.FindByCode("P2")
	s.Require().NoError(err)
	s.Equal(35.0, found.Price)
}

func (s *InventoryE2ESuite) TestRejectedAddLeavesNoFile() {
	// when: every field violates some rule
	_, err := s.svc.Add("P1", "12345", "Peripherals", 19.99, 5)

	// then
	s.ErrorIs(err, producterrors.ErrInvalidName)
	_, statErr := os.Stat(s.dataFile)
	s.True(os.IsNotExist(statErr), "a rejected add must not touch persistence")
}

func (s *InventoryE2ESuite) TestDeleteOfMissingCodeKeepsCollection() {
	// given
	_, err := s.svc.Add("P1", "Mouse", "Peripherals", 19.99, 5)
	s.Require().NoError(err)

	// when
	_, err = s.svc.Delete("NOPE")

	// then
	s.ErrorIs(err, producterrors.ErrProductNotFound)
	s.Len(s.svc.List(), 1)
	s.Len(s.reload().List(), 1)
}

func TestInventoryE2ESuite(t *testing.T) {
	suite.Run(t, new(InventoryE2ESuite))
}

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }
