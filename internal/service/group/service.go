package group

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"expense_tracker/internal/model"
	"expense_tracker/internal/repository"
	"expense_tracker/pkg/logger"

	"github.com/avito-tech/go-transaction-manager/trm/v2"
)

type serv struct {
	txManager trm.Manager
	groupRepo repository.GroupRepository
	userRepo  repository.UserRepository
	log       *logger.Logger
}

func NewService(
	txManager trm.Manager,
	groupRepo repository.GroupRepository,
	userRepo repository.UserRepository,
	log *logger.Logger,
) *serv {
	return &serv{
		txManager: txManager,
		groupRepo: groupRepo,
		userRepo:  userRepo,
		log:       log.Named("group"),
	}
}

func (s *serv) Get(ctx context.Context, name string) (*model.Group, error) {
	group, err := s.groupRepo.GetGroup(ctx, name)
	if errors.Is(err, model.ErrNotFound) {
		return nil, fmt.Errorf("%w: group %q", model.ErrNotFound, name)
	}
	return group, err
}

func (s *serv) List(ctx context.Context) ([]model.Group, error) {
	return s.groupRepo.GetGroups(ctx)
}

func (s *serv) Members(ctx context.Context, name string) ([]string, error) {
	group, err := s.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	return group.Emails(), nil
}

func (s *serv) Delete(ctx context.Context, name string) error {
	err := s.groupRepo.DeleteGroup(ctx, name)
	if errors.Is(err, model.ErrNotFound) {
		return fmt.Errorf("%w: group %q", model.ErrNotFound, name)
	}
	return err
}

// resolve делит адреса на зарегистрированных пользователей и ненайденные.
// Порядок адресов сохраняется
func (s *serv) resolve(ctx context.Context, emails []string) ([]model.User, []string, error) {
	users, err := s.userRepo.GetUsersByEmails(ctx, emails)
	if err != nil {
		return nil, nil, err
	}

	found := make([]model.User, 0, len(users))
	notFound := []string{}
	for _, email := range emails {
		i := slices.IndexFunc(users, func(u model.User) bool { return u.Email == email })
		if i < 0 {
			notFound = append(notFound, email)
			continue
		}
		found = append(found, users[i])
	}

	return found, notFound, nil
}

// free отбрасывает пользователей, уже состоящих в какой-либо группе
func (s *serv) free(ctx context.Context, users []model.User) ([]model.Member, []string, error) {
	emails := make([]string, len(users))
	for i, u := range users {
		emails[i] = u.Email
	}
	taken, err := s.groupRepo.GetGroupNamesByEmails(ctx, emails)
	if err != nil {
		return nil, nil, err
	}

	members := make([]model.Member, 0, len(users))
	alreadyInGroup := []string{}
	for _, u := range users {
		if _, ok := taken[u.Email]; ok {
			alreadyInGroup = append(alreadyInGroup, u.Email)
			continue
		}
		members = append(members, model.Member{Email: u.Email, UserID: u.ID})
	}

	return members, alreadyInGroup, nil
}

// normalizeEmails убирает пробелы, пустые адреса и повторы
func normalizeEmails(emails []string) []string {
	out := make([]string, 0, len(emails))
	for _, e := range emails {
		e = strings.TrimSpace(e)
		if e != "" && !slices.Contains(out, e) {
			out = append(out, e)
		}
	}
	return out
}
