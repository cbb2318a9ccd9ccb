package groupstore

import (
	dbmodels "doc-flow-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	Create(rec dbmodels.Group) (id string, err error)
	GetByName(name string) (rec *dbmodels.Group, err error)
	AddMember(groupID, userID string) error
	IsMember(groupName, userID string) (bool, error)
	ListMembers(groupName string) (list []dbmodels.User, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Group) (id string, err error) {
	err = i.db.
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByName(name string) (*dbmodels.Group, error) {
	rec := dbmodels.Group{}
	err := i.db.
		Where("name = ?", name).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) AddMember(groupID, userID string) error {
	rec := dbmodels.GroupMember{
		GroupID: groupID,
		UserID:  userID,
	}
	return i.db.
		Omit("User").
		Save(&rec).
		Error
}

func (i impl) IsMember(groupName, userID string) (bool, error) {
	var count int64
	err := i.db.
		Model(&dbmodels.GroupMember{}).
		Joins("JOIN groups ON groups.id = group_members.group_id").
		Where("groups.name = ?", groupName).
		Where("group_members.user_id = ?", userID).
		Count(&count).
		Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (i impl) ListMembers(groupName string) (list []dbmodels.User, err error) {
	list = []dbmodels.User{}
	err = i.db.
		Model(&dbmodels.User{}).
		Joins("JOIN group_members ON group_members.user_id = users.id").
		Joins("JOIN groups ON groups.id = group_members.group_id").
		Where("groups.name = ?", groupName).
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
