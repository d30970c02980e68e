package usecase

import (
	"context"
	"crypto/subtle"
	"net/mail"
	"strings"
	"time"

	"github.com/ferdian3456/postreaction/internal/constant"
	"github.com/ferdian3456/postreaction/internal/model"
	"github.com/ferdian3456/postreaction/internal/util"
	"github.com/google/uuid"

	"github.com/knadh/koanf/v2"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type UserUsecase struct {
	UserStore UserStore
	Log       *zap.Logger
	Config    *koanf.Koanf
}

func NewUserUsecase(userStore UserStore, zap *zap.Logger, koanf *koanf.Koanf) *UserUsecase {
	return &UserUsecase{
		UserStore: userStore,
		Log:       zap,
		Config:    koanf,
	}
}

func validateUsername(username string) error {
	if username == "" {
		return &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: "Username is required to not be empty",
			Param:   "username",
		}
	} else if len(username) < 4 {
		return &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: "Username must be at least 4 characters",
			Param:   "username",
		}
	} else if len(username) > 22 {
		return &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: "Username must be at most 22 characters",
			Param:   "username",
		}
	}

	return nil
}

func validatePassword(password string) error {
	if password == "" {
		return &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: "Password is required to not be empty",
			Param:   "password",
		}
	} else if len(password) < 5 {
		return &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: "Password must be at least 5 characters",
			Param:   "password",
		}
	} else if len(password) > 20 {
		return &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: "Password must be at most 20 characters",
			Param:   "password",
		}
	}

	return nil
}

func validateEmail(email string) error {
	if email == "" {
		return &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: "Email is required to not be empty",
			Param:   "email",
		}
	} else if len(email) > 80 {
		return &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: "Email must be at most 80 characters",
			Param:   "email",
		}
	}

	address, err := mail.ParseAddress(email)
	if err != nil || address.Address != email {
		return &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: "Email is not valid",
			Param:   "email",
		}
	}

	return nil
}

func (usecase *UserUsecase) issueTokens(ctx context.Context, userId uuid.UUID, username string) (model.TokenResponse, error) {
	token, err := util.GenerateTokenPair(userId, username, usecase.Config.String("JWT_SECRET_KEY"))
	if err != nil {
		return token, err
	}

	err = usecase.UserStore.SetAuthTokenInCache(ctx, token.AccessToken, token.RefreshToken, userId)
	if err != nil {
		return token, err
	}

	return token, nil
}

func (usecase *UserUsecase) Register(ctx context.Context, payload model.UserRegisterRequest) (model.TokenResponse, error) {
	token := model.TokenResponse{}

	payload.Username = strings.ToLower(strings.TrimSpace(payload.Username))
	payload.Email = strings.ToLower(strings.TrimSpace(payload.Email))

	err := validateUsername(payload.Username)
	if err != nil {
		return token, err
	}

	err = validateEmail(payload.Email)
	if err != nil {
		return token, err
	}

	err = validatePassword(payload.Password)
	if err != nil {
		return token, err
	}

	existUsername, existEmail, err := usecase.UserStore.CheckUsernameOrEmailUnique(ctx, payload.Username, payload.Email)
	if err != nil {
		return token, err
	}

	if existUsername == payload.Username {
		return token, &model.ValidationError{
			Code:    constant.ERR_CONFLICT_ERROR,
			Message: "Username is already taken",
			Param:   "username",
		}
	} else if existEmail == payload.Email {
		return token, &model.ValidationError{
			Code:    constant.ERR_CONFLICT_ERROR,
			Message: "Email is already registered",
			Param:   "email",
		}
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		return token, err
	}

	now := time.Now().UTC()
	user := model.User{
		Id:        uuid.New(),
		Username:  payload.Username,
		Email:     payload.Email,
		Password:  string(hashedPassword),
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = usecase.UserStore.Register(ctx, user)
	if err != nil {
		return token, err
	}

	return usecase.issueTokens(ctx, user.Id, user.Username)
}

func (usecase *UserUsecase) Login(ctx context.Context, payload model.UserLoginRequest) (model.TokenResponse, error) {
	token := model.TokenResponse{}

	payload.Username = strings.ToLower(strings.TrimSpace(payload.Username))

	err := validateUsername(payload.Username)
	if err != nil {
		return token, err
	}

	err = validatePassword(payload.Password)
	if err != nil {
		return token, err
	}

	userId, password, err := usecase.UserStore.GetUserAuth(ctx, payload.Username)
	if err != nil {
		return token, err
	}

	err = bcrypt.CompareHashAndPassword([]byte(password), []byte(payload.Password))
	if err != nil {
		return token, &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: "Password is incorrect",
			Param:   "password",
		}
	}

	return usecase.issueTokens(ctx, userId, payload.Username)
}

func (usecase *UserUsecase) GetUserInfo(ctx context.Context, userId uuid.UUID) (model.UserResponse, error) {
	user, err := usecase.UserStore.GetUserInfo(ctx, userId)
	if err != nil {
		return user, err
	}

	return user, nil
}

// GetAccessToken checks that accessToken is the one most recently issued
// to userId and not yet revoked by logout.
func (usecase *UserUsecase) GetAccessToken(ctx context.Context, userId uuid.UUID, accessToken string) error {
	hashedTokenFromCache, err := usecase.UserStore.GetAccessTokenInCache(ctx, userId)
	if err != nil {
		return err
	}

	hashedTokenFromClient := util.HashToken(accessToken)

	if subtle.ConstantTimeCompare([]byte(hashedTokenFromClient), []byte(hashedTokenFromCache)) != 1 {
		return &model.ValidationError{
			Code:    constant.ERR_UNATHORIZED_ERROR,
			Message: "Authorization token is expired",
			Param:   "accessToken",
		}
	}

	return nil
}

func (usecase *UserUsecase) Logout(ctx context.Context, userId uuid.UUID) error {
	err := usecase.UserStore.RemoveAuthToken(ctx, userId)
	if err != nil {
		return err
	}

	return nil
}
