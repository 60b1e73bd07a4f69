package services

import (
	"errors"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"golang.org/x/crypto/bcrypt"

	"github.com/nattapon-dev/hotel-booking-api/internal/apperr"
	"github.com/nattapon-dev/hotel-booking-api/internal/config"
	"github.com/nattapon-dev/hotel-booking-api/internal/mailer"
	"github.com/nattapon-dev/hotel-booking-api/internal/models"
	"github.com/nattapon-dev/hotel-booking-api/internal/repository"
	"github.com/nattapon-dev/hotel-booking-api/internal/utils"
)

// UserStore is the slice of the user repository the auth service needs.
type UserStore interface {
	Create(*models.User) error
	GetByEmail(string) (*models.User, error)
	GetByID(uuid.UUID) (*models.User, error)
	UpdateRole(uuid.UUID, models.Role) (*models.User, error)
}

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Session is the result of a successful register or login.
type Session struct {
	Token     string
	ExpiresAt time.Time
	User      *models.User
}

type AuthService struct {
	users  UserStore
	mail   *mailer.Dispatcher
	secret string
	ttl    time.Duration
}

func NewAuthService(users UserStore, mail *mailer.Dispatcher, cfg *config.Config) *AuthService {
	return &AuthService{
		users:  users,
		mail:   mail,
		secret: cfg.JWTSecret,
		ttl:    cfg.JWTExpire,
	}
}

type RegisterInput struct {
	Name      string `json:"name"`
	Telephone string `json:"telephone"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

func (in *RegisterInput) validate() error {
	var result *multierror.Error
	if in.Name == "" {
		result = multierror.Append(result, errors.New("please add a name"))
	}
	if in.Telephone == "" {
		result = multierror.Append(result, errors.New("please add a telephone number"))
	}
	if in.Email == "" {
		result = multierror.Append(result, errors.New("please add an email"))
	} else if !emailRe.MatchString(in.Email) {
		result = multierror.Append(result, errors.New("please add a valid email"))
	}
	if in.Password == "" {
		result = multierror.Append(result, errors.New("please add a password"))
	}
	return result.ErrorOrNil()
}

// Register creates the user, sends a best-effort welcome mail and returns
// a fresh session. No user row is written when validation fails.
func (s *AuthService) Register(in RegisterInput) (*Session, error) {
	if err := in.validate(); err != nil {
		return nil, apperr.Wrap(apperr.Validation, "Please provide all required fields: "+err.Error(), err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Failed to register user", err)
	}

	user := &models.User{
		ID:        uuid.New(),
		Name:      in.Name,
		Telephone: in.Telephone,
		Email:     in.Email,
		Password:  string(hash),
		Role:      models.RoleUser,
	}

	if err := s.users.Create(user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperr.New(apperr.Duplicate, "Email already registered")
		}
		return nil, apperr.Wrap(apperr.Internal, "Failed to register user", err)
	}

	s.mail.Dispatch(user.Email, "Welcome to Hotel Booking",
		"Hi "+user.Name+",\n\nYour account has been created. Happy booking!")

	return s.session(user)
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login verifies credentials. Unknown email and wrong password produce
// the same error so accounts cannot be enumerated.
func (s *AuthService) Login(in LoginInput) (*Session, error) {
	if in.Email == "" || in.Password == "" {
		return nil, apperr.New(apperr.Validation, "Please provide an email and password")
	}

	user, err := s.users.GetByEmail(in.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.New(apperr.InvalidCredentials, "Invalid credentials")
		}
		return nil, apperr.Wrap(apperr.Internal, "Failed to login", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.Password)); err != nil {
		return nil, apperr.New(apperr.InvalidCredentials, "Invalid credentials")
	}

	s.mail.Dispatch(user.Email, "New login to your account",
		"Hi "+user.Name+",\n\nYour account was just used to sign in. If this wasn't you, change your password.")

	return s.session(user)
}

// Me returns the authenticated user's profile.
func (s *AuthService) Me(userID uuid.UUID) (*models.User, error) {
	user, err := s.users.GetByID(userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.New(apperr.NotFound, "User not found")
		}
		return nil, apperr.Wrap(apperr.Internal, "Failed to get user", err)
	}
	return user, nil
}

// UpdateRole elevates or demotes a user. The admin gate sits in the
// router; the role value is validated here.
func (s *AuthService) UpdateRole(targetID uuid.UUID, role models.Role) (*models.User, error) {
	if !models.ValidRole(role) {
		return nil, apperr.New(apperr.Validation, "Please provide a valid role (user or admin)")
	}

	user, err := s.users.UpdateRole(targetID, role)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.Newf(apperr.NotFound, "No user with id %s", targetID)
		}
		return nil, apperr.Wrap(apperr.Internal, "Failed to update role", err)
	}
	return user, nil
}

func (s *AuthService) session(user *models.User) (*Session, error) {
	token, exp, err := utils.GenerateToken(user, s.secret, s.ttl)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Failed to sign token", err)
	}
	return &Session{Token: token, ExpiresAt: exp, User: user}, nil
}
