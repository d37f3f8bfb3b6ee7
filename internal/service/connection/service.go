package connection

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.bug.st/serial"

	"github.com/cognitivegears/ha-escpos-thermal-printer/internal/domain/models"
	"github.com/cognitivegears/ha-escpos-thermal-printer/internal/domain/ports"
	"github.com/cognitivegears/ha-escpos-thermal-printer/internal/printer"
)

// ErrNoPrinter is returned when an operation needs an active printer and
// none is connected.
var ErrNoPrinter = errors.New("connection: no active printer")

// Factory builds a printer for a profile. Tests substitute fakes here.
type Factory func(profile models.PrinterProfile, log ports.Logger) ports.Printer

// Service owns the active printer connection and the stored profiles.
type Service struct {
	repo    ports.ProfileRepository
	log     ports.Logger
	factory Factory

	mu     sync.Mutex
	active ports.Printer
}

// NewService creates a connection service over the given repository.
func NewService(repo ports.ProfileRepository, log ports.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log,
		factory: func(profile models.PrinterProfile, log ports.Logger) ports.Printer {
			return printer.New(profile, log)
		},
	}
}

// SetFactory swaps the printer factory.
func (s *Service) SetFactory(f Factory) {
	s.factory = f
}

// GetSystemPorts lists the serial ports present on this machine.
func (s *Service) GetSystemPorts() ([]string, error) {
	portsList, err := serial.GetPortsList()
	if err != nil {
		return nil, err
	}
	sort.Strings(portsList)
	return portsList, nil
}

// Connect activates the stored profile with the given ID, replacing any
// current connection.
func (s *Service) Connect(profileID string) error {
	profile, err := s.repo.FindProfile(profileID)
	if err != nil {
		return err
	}
	if profile == nil {
		return fmt.Errorf("profile %s not found", profileID)
	}

	if err := s.ConnectProfile(*profile); err != nil {
		return err
	}
	return s.repo.UpdateLastUsed(profileID)
}

// ConnectProfile activates a profile directly, e.g. the one from the
// daemon config file.
func (s *Service) ConnectProfile(profile models.PrinterProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active != nil {
		s.active.Disconnect()
		s.active = nil
	}

	p := s.factory(profile, s.log)
	if err := p.Connect(); err != nil {
		return err
	}
	s.active = p
	return nil
}

// Disconnect closes the active connection.
func (s *Service) Disconnect() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active == nil {
		return nil
	}
	err := s.active.Disconnect()
	s.active = nil
	return err
}

// Active returns the connected printer.
func (s *Service) Active() (ports.Printer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active == nil {
		return nil, ErrNoPrinter
	}
	return s.active, nil
}

// IsConnected reports whether a printer is active and its link open.
func (s *Service) IsConnected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active != nil && s.active.Connected()
}

// LoadProfiles lists all stored profiles.
func (s *Service) LoadProfiles() ([]*models.PrinterProfile, error) {
	return s.repo.LoadProfiles()
}

// SaveProfile stores or updates a profile, assigning an ID when missing.
func (s *Service) SaveProfile(profile *models.PrinterProfile) error {
	if profile.ID == "" {
		profile.ID = uuid.NewString()
	}
	profile.LastUsed = time.Now()
	return s.repo.UpsertProfile(profile)
}

// DeleteProfile removes a stored profile.
func (s *Service) DeleteProfile(id string) error {
	return s.repo.DeleteProfile(id)
}

// FindProfile looks a profile up by ID.
func (s *Service) FindProfile(id string) (*models.PrinterProfile, error) {
	return s.repo.FindProfile(id)
}

// ClearProfiles removes every stored profile.
func (s *Service) ClearProfiles() error {
	return s.repo.ClearProfiles()
}
