package group

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"expense_tracker/internal/model"

	"go.uber.org/zap"
)

// Create создаёт группу. Создатель добавляется, даже если его нет в emails,
// и не должен состоять в другой группе
func (s *serv) Create(ctx context.Context, creator model.Identity, name string, emails []string) (*model.GroupChange, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", model.ErrValidation)
	}
	if emails == nil {
		return nil, fmt.Errorf("%w: memberEmails is required", model.ErrValidation)
	}
	requested := normalizeEmails(emails)

	change := &model.GroupChange{NotInGroup: []string{}}
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		// 1. Имя группы свободно
		_, err := s.groupRepo.GetGroup(ctx, name)
		switch {
		case err == nil:
			return fmt.Errorf("%w: group %q", model.ErrAlreadyExists, name)
		case !errors.Is(err, model.ErrNotFound):
			return err
		}

		// 2. Создатель существует и свободен
		author, err := s.userRepo.GetUserByEmail(ctx, creator.Email)
		if err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return fmt.Errorf("%w: user %q", model.ErrNotFound, creator.Email)
			}
			return err
		}
		taken, err := s.groupRepo.GetGroupNamesByEmails(ctx, []string{author.Email})
		if err != nil {
			return err
		}
		if _, ok := taken[author.Email]; ok {
			return fmt.Errorf("%w: you are already in a group", model.ErrValidation)
		}

		// 3. Разбор участников
		users, notFound, err := s.resolve(ctx, requested)
		if err != nil {
			return err
		}
		members, alreadyInGroup, err := s.free(ctx, users)
		if err != nil {
			return err
		}
		if len(members) == 0 {
			return fmt.Errorf("%w: no valid member emails", model.ErrValidation)
		}
		if !slices.ContainsFunc(members, func(m model.Member) bool { return m.Email == author.Email }) {
			members = append(members, model.Member{Email: author.Email, UserID: author.ID})
		}

		if err := s.groupRepo.CreateGroup(ctx, name, members); err != nil {
			return err
		}

		change.Group, err = s.groupRepo.GetGroup(ctx, name)
		change.AlreadyInGroup = alreadyInGroup
		change.MembersNotFound = notFound
		return err
	})
	if err != nil {
		return nil, err
	}

	s.log.WithContext(ctx).Info("group created", zap.String("name", name), zap.Int("members", len(change.Group.Members)))
	return change, nil
}

// AddMembers добавляет в группу зарегистрированных пользователей, которые не состоят в группах
func (s *serv) AddMembers(ctx context.Context, name string, emails []string) (*model.GroupChange, error) {
	requested := normalizeEmails(emails)
	if len(requested) == 0 {
		return nil, fmt.Errorf("%w: emails are required", model.ErrValidation)
	}

	change := &model.GroupChange{NotInGroup: []string{}}
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		if _, err := s.Get(ctx, name); err != nil {
			return err
		}

		users, notFound, err := s.resolve(ctx, requested)
		if err != nil {
			return err
		}
		members, alreadyInGroup, err := s.free(ctx, users)
		if err != nil {
			return err
		}
		if len(members) == 0 {
			return fmt.Errorf("%w: no valid member emails", model.ErrValidation)
		}

		if err := s.groupRepo.AddMembers(ctx, name, members); err != nil {
			return err
		}

		change.Group, err = s.groupRepo.GetGroup(ctx, name)
		change.AlreadyInGroup = alreadyInGroup
		change.MembersNotFound = notFound
		return err
	})
	if err != nil {
		return nil, err
	}

	return change, nil
}

// RemoveMembers убирает участников. В группе остаётся хотя бы один участник:
// если перечислены все, первый участник сохраняется
func (s *serv) RemoveMembers(ctx context.Context, name string, emails []string) (*model.GroupChange, error) {
	requested := normalizeEmails(emails)
	if len(requested) == 0 {
		return nil, fmt.Errorf("%w: emails are required", model.ErrValidation)
	}

	change := &model.GroupChange{AlreadyInGroup: []string{}}
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		group, err := s.Get(ctx, name)
		if err != nil {
			return err
		}
		if len(group.Members) <= 1 {
			return fmt.Errorf("%w: group must keep at least one member", model.ErrValidation)
		}

		users, notFound, err := s.resolve(ctx, requested)
		if err != nil {
			return err
		}

		current := group.Emails()
		var doomed []string
		notInGroup := []string{}
		for _, u := range users {
			if slices.Contains(current, u.Email) {
				doomed = append(doomed, u.Email)
			} else {
				notInGroup = append(notInGroup, u.Email)
			}
		}
		if len(doomed) == 0 {
			return fmt.Errorf("%w: no member emails to remove", model.ErrValidation)
		}
		if len(doomed) == len(current) {
			doomed = slices.DeleteFunc(doomed, func(e string) bool { return e == current[0] })
		}

		if err := s.groupRepo.RemoveMembers(ctx, name, doomed); err != nil {
			return err
		}

		change.Group, err = s.groupRepo.GetGroup(ctx, name)
		change.NotInGroup = notInGroup
		change.MembersNotFound = notFound
		return err
	})
	if err != nil {
		return nil, err
	}

	return change, nil
}
