package user

import (
	"context"
)

type StubUserRepository struct {
	nextId int
	data   map[int]User
}

func NewStubUserRepository() *StubUserRepository {
	return &StubUserRepository{nextId: 0, data: map[int]User{}}
}

func (s *StubUserRepository) CreateUser(ctx context.Context, user User) (int, error) {
	for _, existing := range s.data {
		if existing.Email == user.Email {
			return 0, ErrEmailTaken
		}
	}
	s.nextId++
	user.Id = s.nextId
	s.data[s.nextId] = user
	return s.nextId, nil
}

func (s *StubUserRepository) GetUser(ctx context.Context, id int) (User, error) {
	user, ok := s.data[id]
	if !ok {
		return User{}, ErrUserNotFound
	}
	return user, nil
}

func (s *StubUserRepository) FindByEmail(ctx context.Context, email string) (User, error) {
	for _, user := range s.data {
		if user.Email == email {
			return user, nil
		}
	}
	return User{}, ErrUserNotFound
}

func (s *StubUserRepository) Cleanup() {
	s.nextId = 0
	s.data = map[int]User{}
}
