package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"yujin/config"
	"yujin/infras/jwt"
	jwtMocks "yujin/infras/jwt/mocks"
	"yujin/infras/otel/mocks"
	"yujin/internal/domains/auth/model/dto"
	"yujin/internal/domains/auth/service"
	userMocks "yujin/internal/domains/user/mocks"
	userModel "yujin/internal/domains/user/model"
	"yujin/shared/constant"
	"yujin/shared/failure"
)

func newAuth(t *testing.T) (service.Auth, *userMocks.MockUser, *jwtMocks.MockJWT) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockUserRepo := userMocks.NewMockUser(ctrl)
	mockJWT := jwtMocks.NewMockJWT(ctrl)

	svc := service.New(mockUserRepo, &config.Config{}, mocks.NewOtel(), mockJWT)

	return svc, mockUserRepo, mockJWT
}

// "password" hashed with bcrypt.
const passwordHash = "$2a$10$92IXUNpkjO0rOQ5byMi.Ye4oKoEa3Ro9llC/.og/at2.uheWG/igi"

func validUser() userModel.User {
	return userModel.User{
		ID:       "user-id-123",
		Email:    "admin@example.com",
		Password: passwordHash,
		Role:     constant.RoleAdmin,
		Active:   true,
	}
}

func TestAuthService_Login(t *testing.T) {
	tests := []struct {
		name      string
		req       dto.LoginRequest
		setupMock func(repo *userMocks.MockUser, jwtSvc *jwtMocks.MockJWT)
		wantErr   bool
	}{
		{
			name: "successful login",
			req: dto.LoginRequest{
				Email:    "admin@example.com",
				Password: "password",
			},
			setupMock: func(repo *userMocks.MockUser, jwtSvc *jwtMocks.MockJWT) {
				user := validUser()

				repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(user, nil)

				jwtSvc.EXPECT().
					GenerateTokenPair(user.ID, user.Email, user.Role).
					Return(&jwt.TokenPair{
						AccessToken:  "access-token",
						RefreshToken: "refresh-token",
						ExpiresIn:    900,
					}, nil)

				repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
		},
		{
			name: "user not found",
			req: dto.LoginRequest{
				Email:    "ghost@example.com",
				Password: "password",
			},
			setupMock: func(repo *userMocks.MockUser, jwtSvc *jwtMocks.MockJWT) {
				repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(userModel.User{}, errors.New("user not found"))
			},
			wantErr: true,
		},
		{
			name: "wrong password",
			req: dto.LoginRequest{
				Email:    "admin@example.com",
				Password: "wrongpassword",
			},
			setupMock: func(repo *userMocks.MockUser, jwtSvc *jwtMocks.MockJWT) {
				repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(validUser(), nil)
			},
			wantErr: true,
		},
		{
			name: "inactive account",
			req: dto.LoginRequest{
				Email:    "admin@example.com",
				Password: "password",
			},
			setupMock: func(repo *userMocks.MockUser, jwtSvc *jwtMocks.MockJWT) {
				user := validUser()
				user.Active = false

				repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(user, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, jwtSvc := newAuth(t)
			tt.setupMock(repo, jwtSvc)

			res, err := svc.Login(context.Background(), tt.req)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "access-token", res.AccessToken)
				assert.Equal(t, constant.RoleAdmin, res.Role)
			}
		})
	}
}

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name      string
		req       dto.RegisterRequest
		setupMock func(repo *userMocks.MockUser)
		wantErr   bool
	}{
		{
			name: "new staff account created",
			req: dto.RegisterRequest{
				Email:    "staff@example.com",
				Password: "password123",
				Role:     constant.RoleStaff,
			},
			setupMock: func(repo *userMocks.MockUser) {
				repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)

				repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, user userModel.User) error {
						assert.Equal(t, constant.RoleStaff, user.Role)
						assert.True(t, user.Active)

						// The stored credential is a hash, never the raw password.
						assert.NotEqual(t, "password123", user.Password)

						return nil
					})
			},
		},
		{
			name: "duplicate email rejected",
			req: dto.RegisterRequest{
				Email:    "staff@example.com",
				Password: "password123",
				Role:     constant.RoleStaff,
			},
			setupMock: func(repo *userMocks.MockUser) {
				repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _ := newAuth(t)
			tt.setupMock(repo)

			err := svc.Register(context.Background(), tt.req)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAuthService_RefreshToken(t *testing.T) {
	svc, _, jwtSvc := newAuth(t)

	jwtSvc.EXPECT().
		RefreshTokens("refresh-token").
		Return(&jwt.TokenPair{AccessToken: "new-access", RefreshToken: "new-refresh"}, nil)

	res, err := svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "refresh-token"})

	assert.NoError(t, err)
	assert.Equal(t, "new-access", res.AccessToken)

	jwtSvc.EXPECT().
		RefreshTokens("bad-token").
		Return(nil, errors.New("invalid token"))

	_, err = svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "bad-token"})

	assert.Error(t, err)
	assert.Equal(t, 401, failure.GetCode(err))
}

func TestAuthService_ChangePassword(t *testing.T) {
	tests := []struct {
		name      string
		req       dto.ChangePasswordRequest
		setupMock func(repo *userMocks.MockUser)
		wantErr   bool
	}{
		{
			name: "password changed",
			req: dto.ChangePasswordRequest{
				CurrentPassword: "password",
				NewPassword:     "newpassword123",
			},
			setupMock: func(repo *userMocks.MockUser) {
				repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(validUser(), nil)

				repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
		},
		{
			name: "wrong current password",
			req: dto.ChangePasswordRequest{
				CurrentPassword: "wrong",
				NewPassword:     "newpassword123",
			},
			setupMock: func(repo *userMocks.MockUser) {
				repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(validUser(), nil)
			},
			wantErr: true,
		},
		{
			name: "unknown user",
			req: dto.ChangePasswordRequest{
				CurrentPassword: "password",
				NewPassword:     "newpassword123",
			},
			setupMock: func(repo *userMocks.MockUser) {
				repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(userModel.User{}, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _ := newAuth(t)
			tt.setupMock(repo)

			err := svc.ChangePassword(context.Background(), tt.req, "user-id-123")

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
