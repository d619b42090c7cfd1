package mapper

import (
	"markit-notes-be/internal/entity"
	"markit-notes-be/internal/model"
)

type UserMapper struct{}

func NewUserMapper() *UserMapper {
	return &UserMapper{}
}

func (m *UserMapper) ToEntity(u *model.User) *entity.User {
	if u == nil {
		return nil
	}
	return &entity.User{
		Id:            u.UserID,
		Username:      u.Username,
		PasswordHash:  u.PasswordHash,
		RememberToken: u.RememberToken,
	}
}

func (m *UserMapper) ToModel(u *entity.User) *model.User {
	if u == nil {
		return nil
	}
	return &model.User{
		UserID:        u.Id,
		Username:      u.Username,
		PasswordHash:  u.PasswordHash,
		RememberToken: u.RememberToken,
	}
}
