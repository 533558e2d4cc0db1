package services

import (
	"context"
	"errors"
	"testing"

	"gruzBack/internal/models"
	"gruzBack/utils"
)

func newTestUserService(repo *fakeUserRepo) *UserService {
	tm, err := utils.NewManager("test-signing-key")
	if err != nil {
		panic(err)
	}
	return &UserService{UserRepo: repo, TokenManager: tm}
}

func TestGetOrCreateUserIdempotent(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestUserService(repo)

	first, err := svc.GetOrCreateUser(context.Background(), 10, "ivan", "Иван")
	if err != nil {
		t.Fatalf("GetOrCreateUser: %v", err)
	}
	if first.Role != models.RoleCustomer {
		t.Errorf("role = %q, want customer", first.Role)
	}

	second, err := svc.GetOrCreateUser(context.Background(), 10, "ivan_new", "Иван")
	if err != nil {
		t.Fatalf("repeat GetOrCreateUser: %v", err)
	}
	if second.Username != "ivan_new" {
		t.Errorf("username = %q, want refreshed value", second.Username)
	}
	if len(repo.users) != 1 {
		t.Errorf("users stored = %d, want 1", len(repo.users))
	}
}

func TestSignInWrongPassword(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestUserService(repo)

	if _, err := svc.SignUp(context.Background(), models.SignUpRequest{Phone: "+77001234567", Password: "secret"}); err != nil {
		t.Fatalf("SignUp: %v", err)
	}

	_, _, err := svc.SignIn(context.Background(), models.SignInRequest{Phone: "+77001234567", Password: "wrong"})
	if !errors.Is(err, models.ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestSignInUnknownPhone(t *testing.T) {
	svc := newTestUserService(newFakeUserRepo())

	_, _, err := svc.SignIn(context.Background(), models.SignInRequest{Phone: "+77000000000", Password: "x"})
	if !errors.Is(err, models.ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestSignInStripsPassword(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestUserService(repo)

	if _, err := svc.SignUp(context.Background(), models.SignUpRequest{Phone: "+77001234567", Password: "secret"}); err != nil {
		t.Fatalf("SignUp: %v", err)
	}

	user, tokens, err := svc.SignIn(context.Background(), models.SignInRequest{Phone: "+77001234567", Password: "secret"})
	if err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	if user.Password != "" {
		t.Error("password hash leaked in response")
	}
	if tokens.AccessToken == "" || tokens.RefreshToken == "" {
		t.Error("tokens missing")
	}
}

func TestSwitchToExecutor(t *testing.T) {
	repo := newFakeUserRepo(models.User{ID: 1, Role: models.RoleCustomer})
	svc := newTestUserService(repo)

	if err := svc.SwitchToExecutor(context.Background(), 1); err != nil {
		t.Fatalf("SwitchToExecutor: %v", err)
	}
	if repo.users[1].Role != models.RoleExecutor {
		t.Errorf("role = %q, want executor", repo.users[1].Role)
	}
	if _, ok := repo.profiles[1]; !ok {
		t.Error("executor profile was not created")
	}

	// Repeating the switch must not touch anything.
	repo.roles = map[int]string{}
	if err := svc.SwitchToExecutor(context.Background(), 1); err != nil {
		t.Fatalf("repeat SwitchToExecutor: %v", err)
	}
	if len(repo.roles) != 0 {
		t.Error("repeat switch updated the role again")
	}
}
