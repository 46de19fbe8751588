package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/atinyakov/SixCities/internal/client/api"
	"github.com/atinyakov/SixCities/internal/client/state"
	"github.com/atinyakov/SixCities/internal/models"
)

// CheckAuthorization probes the session behind the stored token. Any
// failure leaves the user NotAuthorized; the Outcome tells a rejected
// token apart from a transport problem. User.Loading always ends false.
func (s *Service) CheckAuthorization(ctx context.Context) Result[models.UserData] {
	s.store.Dispatch(state.SetUserLoading{Loading: true})

	var user models.UserData
	if err := s.api.Get(ctx, "/login", &user); err != nil {
		outcome := TransportError
		if api.IsUnauthorized(err) {
			outcome = Unauthenticated
		}
		s.log.Warn("authorization check failed",
			zap.Stringer("outcome", outcome),
			zap.Error(err),
		)
		s.store.Dispatch(
			state.SetAuthStatus{Status: models.NotAuthorized},
			state.SetUserLoading{Loading: false},
		)
		return Result[models.UserData]{Outcome: outcome, Err: err}
	}

	s.store.Dispatch(
		state.SetAuthStatus{Status: models.Authorized},
		state.SetEmail{Email: user.Email},
		state.SetUserLoading{Loading: false},
	)
	return Result[models.UserData]{Outcome: OK, Value: user}
}

// Login exchanges credentials for a token and persists it. The stored email
// is the one submitted, not the one echoed back. Errors are returned as is;
// User.Loading is not reset on failure.
func (s *Service) Login(ctx context.Context, creds models.AuthData) (models.UserData, error) {
	s.store.Dispatch(state.SetUserLoading{Loading: true})

	var user models.UserData
	if err := s.api.Post(ctx, "/login", creds, &user); err != nil {
		s.log.Error("login failed", zap.String("email", creds.Email), zap.Error(err))
		return models.UserData{}, fmt.Errorf("login: %w", err)
	}

	s.store.Dispatch(
		state.SetAuthStatus{Status: models.Authorized},
		state.SetEmail{Email: creds.Email},
	)
	if err := s.tokens.Save(ctx, user.Token); err != nil {
		s.log.Error("save token failed", zap.Error(err))
		return user, fmt.Errorf("login: save token: %w", err)
	}
	s.store.Dispatch(state.SetUserLoading{Loading: false})

	s.log.Info("logged in", zap.String("email", creds.Email))
	return user, nil
}

// Logout ends the session. The steps run in sequence: if the server
// rejects the request the token is kept and the status is unchanged.
func (s *Service) Logout(ctx context.Context) error {
	s.store.Dispatch(state.SetUserLoading{Loading: true})

	if err := s.api.Delete(ctx, "/logout"); err != nil {
		s.log.Error("logout failed", zap.Error(err))
		return fmt.Errorf("logout: %w", err)
	}
	if err := s.tokens.Drop(ctx); err != nil {
		s.log.Error("drop token failed", zap.Error(err))
		return fmt.Errorf("logout: drop token: %w", err)
	}

	s.store.Dispatch(
		state.SetAuthStatus{Status: models.NotAuthorized},
		state.SetUserLoading{Loading: false},
	)
	s.log.Info("logged out")
	return nil
}
