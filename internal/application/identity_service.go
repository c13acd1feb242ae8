package application

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/campus-connect/internal/domain/entity"
	repo "github.com/oksasatya/campus-connect/internal/domain/repository"
	"github.com/oksasatya/campus-connect/pkg/helpers"
)

// AvatarUploader stores an image and returns its public URL. *helpers.GCSUploader satisfies it.
type AvatarUploader interface {
	Upload(ctx context.Context, objectPath, contentType string, r io.Reader) (string, error)
}

// UserIndex is the search index for the user directory. *helpers.ESIndex satisfies it.
type UserIndex interface {
	Put(ctx context.Context, id string, doc any) error
	MultiMatch(ctx context.Context, query string, fields []string, size int) ([]string, error)
}

type IdentityService struct {
	Users         repo.UserRepository
	Sessions      repo.SessionRepository
	Conversations repo.ConversationRepository
	Locks         *KeyLock
	JWT           *helpers.JWTManager
	Logger        *logrus.Logger

	// Optional infrastructure; nil disables the feature.
	Avatars AvatarUploader
	Index   UserIndex
}

func NewIdentityService(users repo.UserRepository, sessions repo.SessionRepository, convs repo.ConversationRepository, locks *KeyLock, jwt *helpers.JWTManager, logger *logrus.Logger) *IdentityService {
	return &IdentityService{
		Users:         users,
		Sessions:      sessions,
		Conversations: convs,
		Locks:         locks,
		JWT:           jwt,
		Logger:        helpers.LoggerOrDiscard(logger),
	}
}

type SignupInput struct {
	Name       string
	Email      string
	Password   string
	Matric     string
	Faculty    string
	Department string
}

// ProfileUpdate is a partial profile edit; nil fields are left unchanged.
type ProfileUpdate struct {
	Name       *string
	Email      *string
	Matric     *string
	Faculty    *string
	Department *string
	Bio        *string
	Phone      *string
	ProfilePic *string
}

type TokenPair struct {
	AccessToken        string
	AccessTokenExpiry  time.Time
	RefreshToken       string
	RefreshTokenExpiry time.Time
}

// Signup registers a user and signs them in.
func (s *IdentityService) Signup(ctx context.Context, in SignupInput) (*entity.Session, error) {
	if err := required("name", in.Name, "email", in.Email, "password", in.Password); err != nil {
		return nil, err
	}
	hash, err := helpers.HashPassword(in.Password)
	if errors.Is(err, helpers.ErrPasswordTooLong) {
		return nil, invalid("password", "must be at most 72 bytes")
	}
	if err != nil {
		return nil, err
	}

	unlock := s.Locks.Lock(lockUsers)
	users, err := s.Users.List(ctx)
	if err != nil {
		unlock()
		return nil, err
	}
	for _, u := range users {
		if u.Email == in.Email {
			unlock()
			return nil, ErrDuplicateEmail
		}
	}
	u := entity.User{
		ID:         uuid.NewString(),
		Name:       in.Name,
		Email:      in.Email,
		Password:   hash,
		Matric:     in.Matric,
		Faculty:    in.Faculty,
		Department: in.Department,
		Year:       entity.YearFromMatric(in.Matric),
		IsOnline:   true,
		CreatedAt:  now(),
	}
	users = append(users, u)
	err = s.Users.SaveAll(ctx, users)
	unlock()
	if err != nil {
		s.Logger.WithError(err).WithField("email", in.Email).Error("save user directory failed")
		return nil, err
	}

	sess, err := s.newSession(ctx, u)
	if err != nil {
		return nil, err
	}
	s.indexUser(ctx, u)
	return sess, nil
}

// Login checks the credential and opens a fresh session.
// A failed attempt leaves the directory untouched.
func (s *IdentityService) Login(ctx context.Context, email, password string) (*entity.Session, error) {
	unlock := s.Locks.Lock(lockUsers)
	users, err := s.Users.List(ctx)
	if err != nil {
		unlock()
		return nil, err
	}
	idx := -1
	for i, u := range users {
		if u.Email == email && helpers.PasswordMatches(u.Password, password) {
			idx = i
			break
		}
	}
	if idx < 0 {
		unlock()
		return nil, ErrInvalidCredentials
	}
	users[idx].IsOnline = true
	u := users[idx]
	err = s.Users.SaveAll(ctx, users)
	unlock()
	if err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Error("save user directory failed")
		return nil, err
	}
	return s.newSession(ctx, u)
}

// Logout marks the user offline and drops the session. Repeating it is harmless.
func (s *IdentityService) Logout(ctx context.Context, userID string) error {
	unlock := s.Locks.Lock(lockUsers)
	users, err := s.Users.List(ctx)
	if err != nil {
		unlock()
		return err
	}
	changed := false
	for i := range users {
		if users[i].ID == userID && users[i].IsOnline {
			users[i].IsOnline = false
			changed = true
		}
	}
	if changed {
		err = s.Users.SaveAll(ctx, users)
	}
	unlock()
	if err != nil {
		return err
	}
	return s.Sessions.Delete(ctx, userID)
}

// Session returns the stored session for userID, or ErrSessionExpired when there is none.
func (s *IdentityService) Session(ctx context.Context, userID string) (*entity.Session, error) {
	sess, err := s.Sessions.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, ErrSessionExpired
	}
	return sess, nil
}

// UpdateProfile merges the set fields into the directory entry, the session
// copy and every conversation snapshot of the user, in that order.
// A failure while re-stamping conversations is returned, but the directory
// and session writes are kept.
func (s *IdentityService) UpdateProfile(ctx context.Context, userID string, in ProfileUpdate) (*entity.User, error) {
	if in.Name != nil && *in.Name == "" {
		return nil, invalid("name", "cannot be empty")
	}
	if in.Email != nil && *in.Email == "" {
		return nil, invalid("email", "cannot be empty")
	}

	unlock := s.Locks.Lock(lockUsers)
	defer unlock()

	users, err := s.Users.List(ctx)
	if err != nil {
		return nil, err
	}
	idx := -1
	for i, u := range users {
		if u.ID == userID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, ErrUserNotFound
	}
	if in.Email != nil && *in.Email != users[idx].Email {
		for _, u := range users {
			if u.Email == *in.Email {
				return nil, ErrDuplicateEmail
			}
		}
	}

	u := &users[idx]
	apply(&u.Name, in.Name)
	apply(&u.Email, in.Email)
	apply(&u.Faculty, in.Faculty)
	apply(&u.Department, in.Department)
	apply(&u.Bio, in.Bio)
	apply(&u.Phone, in.Phone)
	apply(&u.ProfilePic, in.ProfilePic)
	if in.Matric != nil {
		u.Matric = *in.Matric
		u.Year = entity.YearFromMatric(u.Matric)
	}
	updated := *u

	if err := s.Users.SaveAll(ctx, users); err != nil {
		s.Logger.WithError(err).WithField("user_id", userID).Error("save user directory failed")
		return nil, err
	}

	sess, err := s.Sessions.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if sess != nil {
		sess.User = updated.Public()
		sess.UpdatedAt = now()
		if err := s.Sessions.Save(ctx, sess); err != nil {
			return nil, err
		}
	}

	if err := s.restampConversations(ctx, updated); err != nil {
		s.Logger.WithError(err).WithField("user_id", userID).Error("re-stamp conversation participants failed")
		return nil, err
	}

	s.indexUser(ctx, updated)
	pub := updated.Public()
	return &pub, nil
}

func apply(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func (s *IdentityService) restampConversations(ctx context.Context, u entity.User) error {
	defer s.Locks.Lock(lockConversations)()

	convs, err := s.Conversations.List(ctx)
	if err != nil {
		return err
	}
	snap := entity.ParticipantFrom(u)
	changed := false
	for i := range convs {
		for j := range convs[i].Participants {
			if convs[i].Participants[j].ID == u.ID {
				convs[i].Participants[j] = snap
				changed = true
			}
		}
	}
	if !changed {
		return nil
	}
	return s.Conversations.SaveAll(ctx, convs)
}

// UploadAvatar stores the image and records its URL as the profile picture.
func (s *IdentityService) UploadAvatar(ctx context.Context, userID string, r io.Reader, filename, contentType string) (*entity.User, error) {
	if s.Avatars == nil {
		return nil, ErrUploadsNotConfigured
	}
	url, err := s.Avatars.Upload(ctx, helpers.AvatarObjectPath(userID, filename), contentType, r)
	if err != nil {
		s.Logger.WithError(err).WithField("user_id", userID).Error("avatar upload failed")
		return nil, err
	}
	return s.UpdateProfile(ctx, userID, ProfileUpdate{ProfilePic: &url})
}

// Directory returns every user without credentials.
func (s *IdentityService) Directory(ctx context.Context) ([]entity.User, error) {
	users, err := s.Users.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]entity.User, 0, len(users))
	for _, u := range users {
		out = append(out, u.Public())
	}
	return out, nil
}

// SearchUsers finds users by name, email or matric. It uses the search index
// when one is configured and falls back to a directory scan otherwise.
func (s *IdentityService) SearchUsers(ctx context.Context, q string, size int) ([]entity.User, error) {
	if size <= 0 || size > 50 {
		size = 10
	}
	users, err := s.Directory(ctx)
	if err != nil {
		return nil, err
	}
	if q == "" {
		return []entity.User{}, nil
	}

	if s.Index != nil {
		c, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()
		ids, err := s.Index.MultiMatch(c, q, []string{"name", "email^2", "matric"}, size)
		if err == nil {
			byID := make(map[string]entity.User, len(users))
			for _, u := range users {
				byID[u.ID] = u
			}
			out := make([]entity.User, 0, len(ids))
			for _, id := range ids {
				if u, ok := byID[id]; ok {
					out = append(out, u)
				}
			}
			return out, nil
		}
		s.Logger.WithError(err).Warn("es search failed, scanning directory")
	}

	out := []entity.User{}
	for _, u := range users {
		if entity.ContainsFold(q, u.Name, u.Email, u.Matric) {
			out = append(out, u)
			if len(out) == size {
				break
			}
		}
	}
	return out, nil
}

// IssueTokens signs an access/refresh pair bound to the session id.
func (s *IdentityService) IssueTokens(sess *entity.Session) (TokenPair, error) {
	if s.JWT == nil {
		return TokenPair{}, errors.New("jwt not configured")
	}
	access, aexp, err := s.JWT.GenerateAccessToken(sess.User.ID, sess.ID)
	if err != nil {
		s.Logger.WithError(err).WithField("user_id", sess.User.ID).Error("generate access token failed")
		return TokenPair{}, err
	}
	refresh, rexp, err := s.JWT.GenerateRefreshToken(sess.User.ID, sess.ID)
	if err != nil {
		s.Logger.WithError(err).WithField("user_id", sess.User.ID).Error("generate refresh token failed")
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: access, AccessTokenExpiry: aexp, RefreshToken: refresh, RefreshTokenExpiry: rexp}, nil
}

// Refresh validates a refresh token against the stored session, rotates the
// session id and issues a new token pair.
func (s *IdentityService) Refresh(ctx context.Context, refreshToken string) (*entity.Session, TokenPair, error) {
	if s.JWT == nil {
		return nil, TokenPair{}, ErrInvalidCredentials
	}
	claims, err := s.JWT.ParseRefreshToken(refreshToken)
	if err != nil {
		return nil, TokenPair{}, ErrInvalidCredentials
	}
	sess, err := s.Sessions.Get(ctx, claims.UserID)
	if err != nil {
		return nil, TokenPair{}, err
	}
	if sess == nil || sess.ID != claims.SessionID {
		return nil, TokenPair{}, ErrInvalidCredentials
	}
	sess.ID = uuid.NewString()
	sess.UpdatedAt = now()
	if err := s.Sessions.Save(ctx, sess); err != nil {
		return nil, TokenPair{}, err
	}
	pair, err := s.IssueTokens(sess)
	if err != nil {
		return nil, TokenPair{}, err
	}
	return sess, pair, nil
}

func (s *IdentityService) newSession(ctx context.Context, u entity.User) (*entity.Session, error) {
	sess := &entity.Session{
		ID:        uuid.NewString(),
		User:      u.Public(),
		CreatedAt: now(),
	}
	if err := s.Sessions.Save(ctx, sess); err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Error("save session failed")
		return nil, err
	}
	return sess, nil
}

func (s *IdentityService) indexUser(ctx context.Context, u entity.User) {
	if s.Index == nil {
		return
	}
	doc := map[string]any{
		"id":         u.ID,
		"name":       u.Name,
		"email":      u.Email,
		"matric":     u.Matric,
		"faculty":    u.Faculty,
		"department": u.Department,
		"created_at": u.CreatedAt.Format(time.RFC3339Nano),
	}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := s.Index.Put(c, u.ID, doc); err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Warn("es index failed")
	}
}
