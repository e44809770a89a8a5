// Package session tracks who a client is and which view they are on. The
// navigation rules mirror the storefront exactly, including the admin portal
// parameter and the plaintext supplier login, both kept on purpose as demo
// behavior (see DESIGN.md).
package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/assoumso/au-djassa/internal/state"
	"github.com/assoumso/au-djassa/internal/syncer"
	"github.com/assoumso/au-djassa/pkg/enums"
	pkgerrors "github.com/assoumso/au-djassa/pkg/errors"
	"github.com/assoumso/au-djassa/pkg/logger"
	"github.com/assoumso/au-djassa/pkg/models"
)

// AdminPortalParam is the query parameter value that unlocks the admin
// dashboard at bootstrap. There is no credential behind it.
const AdminPortalParam = "admin"

const loginFailedMessage = "Nom d'utilisateur ou mot de passe incorrect. (Démo: Global Tech Imports / 123456)"

// Session is one client's navigation state.
type Session struct {
	ID        string
	Role      enums.UserRole
	View      enums.ViewState
	Supplier  *models.Supplier
	CreatedAt time.Time
}

func (s Session) clone() Session {
	out := s
	if s.Supplier != nil {
		sup := *s.Supplier
		out.Supplier = &sup
	}
	return out
}

// SupplierCreator persists a new supplier account.
type SupplierCreator interface {
	CreateSupplier(ctx context.Context, s models.Supplier) (models.Supplier, syncer.Outcome, error)
}

// Manager owns all live sessions.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	store   *state.Store
	creator SupplierCreator
	logg    *logger.Logger
	now     func() time.Time
}

// NewManager builds a session manager over the shared state.
func NewManager(store *state.Store, creator SupplierCreator, logg *logger.Logger) *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		store:    store,
		creator:  creator,
		logg:     logg,
		now:      time.Now,
	}
}

// Bootstrap opens a session. A portal value of "admin" grants the admin role
// directly; anything else lands on the public landing view as a guest.
func (m *Manager) Bootstrap(ctx context.Context, portal string) Session {
	sess := &Session{
		ID:        uuid.NewString(),
		Role:      enums.UserRoleGuest,
		View:      enums.ViewLanding,
		CreatedAt: m.now(),
	}
	if portal == AdminPortalParam {
		m.logg.Warn(m.logg.WithSessionID(ctx, sess.ID), "admin portal access detected")
		sess.Role = enums.UserRoleAdmin
		sess.View = enums.ViewAdminDashboard
	}

	m.mu.Lock()
	m.sessions[sess.ID] = sess
	m.mu.Unlock()
	return sess.clone()
}

// Get returns a copy of the session.
func (m *Manager) Get(id string) (Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	sess, ok := m.sessions[id]
	if !ok {
		return Session{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "unknown session")
	}
	return sess.clone(), nil
}

// SelectRole dispatches from the landing view: clients go straight to the
// marketplace, suppliers to the login form, admins to their dashboard.
func (m *Manager) SelectRole(ctx context.Context, id string, role enums.UserRole) (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[id]
	if !ok {
		return Session{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "unknown session")
	}
	if sess.View != enums.ViewLanding {
		return Session{}, pkgerrors.New(pkgerrors.CodeStateConflict, fmt.Sprintf("cannot select a role from view %s", sess.View))
	}

	switch role {
	case enums.UserRoleClient:
		sess.Role = enums.UserRoleClient
		sess.View = enums.ViewMarketplace
	case enums.UserRoleSupplier:
		sess.View = enums.ViewSupplierLogin
	case enums.UserRoleAdmin:
		sess.Role = enums.UserRoleAdmin
		sess.View = enums.ViewAdminDashboard
	default:
		return Session{}, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown role %q", role))
	}
	return sess.clone(), nil
}

// GoToRegistration moves from the supplier login form to the registration form.
func (m *Manager) GoToRegistration(ctx context.Context, id string) (Session, error) {
	return m.moveView(id, enums.ViewSupplierLogin, enums.ViewSupplierRegistration)
}

// BackToLanding abandons the supplier login or registration form.
func (m *Manager) BackToLanding(ctx context.Context, id string) (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[id]
	if !ok {
		return Session{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "unknown session")
	}
	if sess.View != enums.ViewSupplierLogin && sess.View != enums.ViewSupplierRegistration {
		return Session{}, pkgerrors.New(pkgerrors.CodeStateConflict, fmt.Sprintf("cannot cancel from view %s", sess.View))
	}
	sess.View = enums.ViewLanding
	sess.Role = enums.UserRoleGuest
	return sess.clone(), nil
}

func (m *Manager) moveView(id string, from, to enums.ViewState) (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[id]
	if !ok {
		return Session{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "unknown session")
	}
	if sess.View != from {
		return Session{}, pkgerrors.New(pkgerrors.CodeStateConflict, fmt.Sprintf("cannot move from view %s", sess.View))
	}
	sess.View = to
	return sess.clone(), nil
}

// SupplierLogin matches the login input against each supplier's email OR
// display name, then compares the password byte for byte. Plaintext and
// case-sensitive, as the stored accounts are.
func (m *Manager) SupplierLogin(ctx context.Context, id, login, password string) (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[id]
	if !ok {
		return Session{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "unknown session")
	}
	if sess.View != enums.ViewSupplierLogin {
		return Session{}, pkgerrors.New(pkgerrors.CodeStateConflict, fmt.Sprintf("cannot log in from view %s", sess.View))
	}

	for _, supplier := range m.store.Suppliers() {
		// Accounts registered without an email must not match an empty login.
		matched := supplier.Name == login || (supplier.Email != "" && supplier.Email == login)
		if matched && supplier.Password == password {
			sup := supplier
			sess.Supplier = &sup
			sess.Role = enums.UserRoleSupplier
			sess.View = enums.ViewSupplierDashboard
			m.logg.Info(m.logg.WithSessionID(ctx, sess.ID), "supplier logged in")
			return sess.clone(), nil
		}
	}
	return Session{}, pkgerrors.New(pkgerrors.CodeUnauthorized, loginFailedMessage)
}

// RegistrationInput is the supplier signup form.
type RegistrationInput struct {
	Name        string
	Category    string
	Description string
	Email       string
	Phone       string
	Address     string
	Password    string
}

// RegisterSupplier creates the account and logs the new supplier straight in.
// New accounts start at a 5.0 rating, unverified and available.
func (m *Manager) RegisterSupplier(ctx context.Context, id string, input RegistrationInput) (Session, syncer.Outcome, error) {
	m.mu.Lock()
	sess, ok := m.sessions[id]
	if !ok {
		m.mu.Unlock()
		return Session{}, "", pkgerrors.New(pkgerrors.CodeUnauthorized, "unknown session")
	}
	if sess.View != enums.ViewSupplierRegistration {
		view := sess.View
		m.mu.Unlock()
		return Session{}, "", pkgerrors.New(pkgerrors.CodeStateConflict, fmt.Sprintf("cannot register from view %s", view))
	}
	m.mu.Unlock()

	supplier := models.Supplier{
		Name:        input.Name,
		Rating:      5.0,
		Verified:    false,
		IsAvailable: true,
		Category:    input.Category,
		Description: input.Description,
		Email:       input.Email,
		Phone:       input.Phone,
		Address:     input.Address,
		Password:    input.Password,
	}
	if supplier.Name == "" {
		supplier.Name = "Nouvelle Entreprise"
	}
	if supplier.Category == "" {
		supplier.Category = "Ventes"
	}

	created, outcome, err := m.creator.CreateSupplier(ctx, supplier)
	if err != nil {
		return Session{}, "", err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok = m.sessions[id]
	if !ok {
		return Session{}, "", pkgerrors.New(pkgerrors.CodeUnauthorized, "unknown session")
	}
	sup := created
	sess.Supplier = &sup
	sess.Role = enums.UserRoleSupplier
	sess.View = enums.ViewSupplierDashboard
	m.logg.Info(m.logg.WithSessionID(ctx, sess.ID), "supplier account created")
	return sess.clone(), outcome, nil
}

// Logout resets the session to an anonymous guest on the landing view. Any
// admin grant is gone for good; bootstrapping again without the portal
// parameter cannot restore it.
func (m *Manager) Logout(ctx context.Context, id string) (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[id]
	if !ok {
		return Session{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "unknown session")
	}
	sess.Role = enums.UserRoleGuest
	sess.View = enums.ViewLanding
	sess.Supplier = nil
	return sess.clone(), nil
}
