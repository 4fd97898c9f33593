package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/MasCreaThor/plataforma/internal/api"
	"github.com/MasCreaThor/plataforma/internal/domain"
	"github.com/MasCreaThor/plataforma/internal/logger"
)

// State is the session lifecycle state.
type State int

const (
	StateUnauthenticated State = iota
	StateInitializing
	StateAuthenticated
	StateSessionExpired
)

func (s State) String() string {
	switch s {
	case StateUnauthenticated:
		return "unauthenticated"
	case StateInitializing:
		return "initializing"
	case StateAuthenticated:
		return "authenticated"
	case StateSessionExpired:
		return "session-expired"
	default:
		return "unknown"
	}
}

// Route names a navigation target the presentation layer should move to
// after an auth transition.
type Route string

const (
	RouteLogin     Route = "login"
	RouteDashboard Route = "dashboard"
)

var ErrPasswordMismatch = errors.New("passwords do not match")

// Manager owns the session: current user, lifecycle state, and the
// login/register/logout/refresh operations. It is the only writer of the
// token store outside the client's refresh critical section.
type Manager struct {
	client *api.Client
	store  api.TokenStore
	log    logger.Logger

	// navigate is invoked on transitions that move the user somewhere
	// (login -> dashboard, logout/expiry -> login). Optional.
	navigate func(Route)

	mu    sync.RWMutex
	state State
	user  *domain.User
}

// NewManager builds a session manager. navigate may be nil.
func NewManager(client *api.Client, store api.TokenStore, log logger.Logger, navigate func(Route)) *Manager {
	return &Manager{
		client:   client,
		store:    store,
		log:      log,
		navigate: navigate,
		state:    StateUnauthenticated,
	}
}

// authResponse is the shape of the login/register endpoints. These are the
// only responses that arrive outside the usual data envelope.
type authResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         *domain.User `json:"user"`
}

// RegisterInput is the registration form. ConfirmPassword is a client-only
// check and is never transmitted.
type RegisterInput struct {
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"-"`
}

func (in *RegisterInput) Validate() error {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Email = strings.TrimSpace(in.Email)
	if in.Email == "" {
		return errors.New("email is required")
	}
	if in.Password == "" {
		return errors.New("password is required")
	}
	if in.ConfirmPassword != "" && in.ConfirmPassword != in.Password {
		return ErrPasswordMismatch
	}
	return nil
}

// Initialize restores a persisted session on process start: if an access
// token is stored, the profile is fetched to prove it still works. Any
// failure clears the stored pair and lands in Unauthenticated rather than
// surfacing an error; a cold start must never crash on stale tokens.
func (m *Manager) Initialize(ctx context.Context) {
	m.setState(StateInitializing)

	creds, err := m.store.Load()
	if err != nil || creds.AccessToken == "" {
		if err != nil {
			m.log.Warn("failed to load stored credentials", logger.Error(err))
		}
		m.setState(StateUnauthenticated)
		return
	}

	user, err := m.fetchProfile(ctx)
	if err != nil {
		m.log.Debug("stored session no longer valid", logger.Error(err))
		if clearErr := m.store.Clear(); clearErr != nil {
			m.log.Warn("failed to clear credentials", logger.Error(clearErr))
		}
		m.setUser(nil, StateUnauthenticated)
		return
	}
	m.setUser(user, StateAuthenticated)
}

// Login exchanges credentials for a session. On success the token pair is
// persisted, the user cached, and navigation moves to the workspace.
func (m *Manager) Login(ctx context.Context, email, password string) (*domain.User, error) {
	body, err := m.client.Post(ctx, "/auth/login", map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return nil, err
	}
	return m.establishSession(body, "login")
}

// Register creates an account and logs it in, with the same session
// side effects as Login.
func (m *Manager) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	body, err := m.client.Post(ctx, "/auth/register", input)
	if err != nil {
		return nil, err
	}
	return m.establishSession(body, "register")
}

func (m *Manager) establishSession(body []byte, op string) (*domain.User, error) {
	var resp authResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%s: malformed auth response: %w", op, err)
	}
	if resp.AccessToken == "" {
		return nil, fmt.Errorf("%s: auth response missing access token", op)
	}

	if err := m.store.Save(api.Credentials{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
	}); err != nil {
		return nil, fmt.Errorf("%s: persist session: %w", op, err)
	}

	m.setUser(resp.User, StateAuthenticated)
	m.log.Info("session established", logger.String("op", op))
	m.goTo(RouteDashboard)
	return resp.User, nil
}

// Logout tears the session down locally. The backend is not called: the
// tokens are stateless JWTs and simply stop being presented.
func (m *Manager) Logout() error {
	if err := m.store.Clear(); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	m.setUser(nil, StateUnauthenticated)
	m.log.Info("logged out")
	m.goTo(RouteLogin)
	return nil
}

// RefreshUser re-fetches the profile with the current token. A failure is
// treated as session expiry: tokens are cleared and the state flips to
// SessionExpired, with a controlled error instead of a raw throw.
func (m *Manager) RefreshUser(ctx context.Context) (*domain.User, error) {
	user, err := m.fetchProfile(ctx)
	if err != nil {
		if clearErr := m.store.Clear(); clearErr != nil {
			m.log.Warn("failed to clear credentials", logger.Error(clearErr))
		}
		m.setUser(nil, StateSessionExpired)
		return nil, fmt.Errorf("%w: %v", api.ErrSessionExpired, err)
	}
	m.setUser(user, StateAuthenticated)
	return user, nil
}

func (m *Manager) fetchProfile(ctx context.Context) (*domain.User, error) {
	body, err := m.client.Get(ctx, "/auth/profile", nil)
	if err != nil {
		return nil, err
	}
	var user domain.User
	if err := api.Decode(body, &user); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}
	return &user, nil
}

// State returns the current lifecycle state.
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// CurrentUser returns the cached user, nil when not authenticated.
func (m *Manager) CurrentUser() *domain.User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.user
}

func (m *Manager) setState(s State) {
	m.mu.Lock()
	m.state = s
	m.mu.Unlock()
}

func (m *Manager) setUser(u *domain.User, s State) {
	m.mu.Lock()
	m.user = u
	m.state = s
	m.mu.Unlock()
}

func (m *Manager) goTo(r Route) {
	if m.navigate != nil {
		m.navigate(r)
	}
}
