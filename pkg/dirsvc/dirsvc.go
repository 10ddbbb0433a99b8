// Copyright (c) 2025 cocowh. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package dirsvc is the directory-service query boundary the operator
// scripts depend on. The logging core does not use it; scripts call it
// and report outcomes through the logger.
package dirsvc

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// User is the result of a user lookup. A lookup that finds nothing is
// not an error; Exists is false and Email empty.
type User struct {
	Email  string
	Exists bool
}

// MemberType distinguishes user members from nested groups.
type MemberType string

const (
	MemberUser  MemberType = "user"
	MemberGroup MemberType = "group"
)

// Member is one entry of a group listing.
type Member struct {
	Name string
	Type MemberType
}

// ErrGroupNotFound is returned when a group identifier matches nothing.
var ErrGroupNotFound = errors.New("group not found")

// Directory answers identity queries.
type Directory interface {
	FindUser(identifier string) (User, error)
	FindGroupMembers(groupID string) ([]Member, error)
}

// StaticDirectory is an in-memory Directory loadable from CSV exports,
// used for offline runs and tests.
type StaticDirectory struct {
	users  map[string]User
	groups map[string][]Member
}

func NewStaticDirectory() *StaticDirectory {
	return &StaticDirectory{
		users:  make(map[string]User),
		groups: make(map[string][]Member),
	}
}

// AddUser registers a user under the given identifier.
func (d *StaticDirectory) AddUser(identifier, email string) {
	d.users[strings.ToLower(identifier)] = User{Email: email, Exists: true}
}

// AddGroupMember appends one member to a group, creating the group as
// needed.
func (d *StaticDirectory) AddGroupMember(groupID, name string, memberType MemberType) {
	key := strings.ToLower(groupID)
	d.groups[key] = append(d.groups[key], Member{Name: name, Type: memberType})
}

// FindUser looks up an identifier. Unknown identifiers yield a
// non-existing user, not an error.
func (d *StaticDirectory) FindUser(identifier string) (User, error) {
	user, ok := d.users[strings.ToLower(identifier)]
	if !ok {
		return User{}, nil
	}
	return user, nil
}

// FindGroupMembers lists the members of a group.
func (d *StaticDirectory) FindGroupMembers(groupID string) ([]Member, error) {
	members, ok := d.groups[strings.ToLower(groupID)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrGroupNotFound, groupID)
	}
	return members, nil
}

// LoadUsersCSV reads identifier,email rows. A header row starting with
// "identifier" is skipped.
func (d *StaticDirectory) LoadUsersCSV(r io.Reader) error {
	records, err := readRows(r, 2)
	if err != nil {
		return err
	}
	for _, row := range records {
		if strings.EqualFold(row[0], "identifier") {
			continue
		}
		d.AddUser(row[0], row[1])
	}
	return nil
}

// LoadGroupsCSV reads group,name,type rows. A header row starting with
// "group" is skipped; an empty type defaults to user.
func (d *StaticDirectory) LoadGroupsCSV(r io.Reader) error {
	records, err := readRows(r, 3)
	if err != nil {
		return err
	}
	for _, row := range records {
		if strings.EqualFold(row[0], "group") {
			continue
		}
		memberType := MemberType(strings.ToLower(row[2]))
		if memberType == "" {
			memberType = MemberUser
		}
		if memberType != MemberUser && memberType != MemberGroup {
			return fmt.Errorf("bad member type %q for group %s", row[2], row[0])
		}
		d.AddGroupMember(row[0], row[1], memberType)
	}
	return nil
}

func readRows(r io.Reader, fields int) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = fields
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("bad csv: %w", err)
	}
	return records, nil
}
