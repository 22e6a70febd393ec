package group_repo

import (
	"context"
	"errors"
	"fmt"

	"expense_tracker/internal/model"
	"expense_tracker/internal/repository"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	groupsTable  = "groups"
	colName      = "name"
	membersTable = "group_members"
	colGroupName = "group_name"
	colEmail     = "email"
	colUserID    = "user_id"
	colPosition  = "position"
)

type repo struct {
	dbc    *pgxpool.Pool
	getter *trmpgx.CtxGetter
}

func NewGroupRepository(dbc *pgxpool.Pool) repository.GroupRepository {
	return &repo{
		dbc:    dbc,
		getter: trmpgx.DefaultCtxGetter,
	}
}

func (r *repo) conn(ctx context.Context) trmpgx.Tr {
	return r.getter.DefaultTrOrDB(ctx, r.dbc)
}

// CreateGroup - создаёт группу и её участников.
// Вызывать внутри транзакции: это два запроса
func (r *repo) CreateGroup(ctx context.Context, name string, members []model.Member) error {
	query := sq.Insert(groupsTable).
		Columns(colName).
		Values(name).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.conn(ctx).Exec(ctx, sqlStr, args...)
	if err != nil {
		if repository.IsUniqueViolation(err) {
			return model.ErrAlreadyExists
		}
		return fmt.Errorf("create group: %w", err)
	}

	return r.AddMembers(ctx, name, members)
}

func (r *repo) GetGroup(ctx context.Context, name string) (*model.Group, error) {
	query := sq.Select(colName).
		From(groupsTable).
		Where(sq.Eq{colName: name}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	group := model.Group{Members: []model.Member{}}
	err = r.conn(ctx).QueryRow(ctx, sqlStr, args...).Scan(&group.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("get group: %w", err)
	}

	members, err := r.getMembers(ctx, sq.Eq{colGroupName: name})
	if err != nil {
		return nil, err
	}
	group.Members = members[name]

	return &group, nil
}

func (r *repo) GetGroups(ctx context.Context) ([]model.Group, error) {
	query := sq.Select(colName).
		From(groupsTable).
		OrderBy(colName).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn(ctx).Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("get groups: %w", err)
	}

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan group: %w", err)
		}
		names = append(names, name)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	members, err := r.getMembers(ctx, nil)
	if err != nil {
		return nil, err
	}

	groups := make([]model.Group, 0, len(names))
	for _, name := range names {
		g := model.Group{Name: name, Members: members[name]}
		if g.Members == nil {
			g.Members = []model.Member{}
		}
		groups = append(groups, g)
	}

	return groups, nil
}

func (r *repo) GetGroupNamesByEmails(ctx context.Context, emails []string) (map[string]string, error) {
	result := make(map[string]string)
	if len(emails) == 0 {
		return result, nil
	}

	query := sq.Select(colEmail, colGroupName).
		From(membersTable).
		Where(sq.Eq{colEmail: emails}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn(ctx).Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("get groups by emails: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var email, name string
		if err := rows.Scan(&email, &name); err != nil {
			return nil, fmt.Errorf("scan group member: %w", err)
		}
		result[email] = name
	}

	return result, rows.Err()
}

func (r *repo) AddMembers(ctx context.Context, name string, members []model.Member) error {
	if len(members) == 0 {
		return nil
	}

	query := insertMembers(name, members)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.conn(ctx).Exec(ctx, sqlStr, args...)
	if err != nil {
		if repository.IsUniqueViolation(err) {
			return model.ErrAlreadyExists
		}
		return fmt.Errorf("add group members: %w", err)
	}

	return nil
}

func (r *repo) RemoveMembers(ctx context.Context, name string, emails []string) error {
	query := deleteMembers(name, emails)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.conn(ctx).Exec(ctx, sqlStr, args...)
	if err != nil {
		return fmt.Errorf("remove group members: %w", err)
	}

	return nil
}

// DeleteGroup - участники удаляются каскадом
func (r *repo) DeleteGroup(ctx context.Context, name string) error {
	query := sq.Delete(groupsTable).
		Where(sq.Eq{colName: name}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	res, err := r.conn(ctx).Exec(ctx, sqlStr, args...)
	if err != nil {
		return fmt.Errorf("delete group: %w", err)
	}
	if res.RowsAffected() == 0 {
		return model.ErrNotFound
	}

	return nil
}

// getMembers - участники по группам в порядке вступления
func (r *repo) getMembers(ctx context.Context, where sq.Sqlizer) (map[string][]model.Member, error) {
	query := selectMembers(where)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn(ctx).Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("get group members: %w", err)
	}
	defer rows.Close()

	members := make(map[string][]model.Member)
	for rows.Next() {
		var name string
		var m model.Member
		if err := rows.Scan(&name, &m.Email, &m.UserID); err != nil {
			return nil, fmt.Errorf("scan group member: %w", err)
		}
		members[name] = append(members[name], m)
	}

	return members, rows.Err()
}

func selectMembers(where sq.Sqlizer) sq.SelectBuilder {
	query := sq.Select(colGroupName, colEmail, colUserID).
		From(membersTable).
		OrderBy(colPosition).
		PlaceholderFormat(sq.Dollar)
	if where != nil {
		query = query.Where(where)
	}
	return query
}

func insertMembers(name string, members []model.Member) sq.InsertBuilder {
	query := sq.Insert(membersTable).
		Columns(colGroupName, colEmail, colUserID).
		PlaceholderFormat(sq.Dollar)
	for _, m := range members {
		query = query.Values(name, m.Email, m.UserID)
	}
	return query
}

func deleteMembers(name string, emails []string) sq.DeleteBuilder {
	return sq.Delete(membersTable).
		Where(sq.Eq{colGroupName: name, colEmail: emails}).
		PlaceholderFormat(sq.Dollar)
}
