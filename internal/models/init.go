package models

import (
	"strings"

	"github.com/bgsport/backoffice/internal/constants"
	"github.com/bgsport/backoffice/internal/logger"
)

// InitDefaultAdmin 初始化默认销售管理员，保证下单时至少有一个 admin 角色可选
func InitDefaultAdmin(fullName string) error {
	var count int64
	if err := DB.Model(&User{}).Where("role = ?", constants.UserRoleAdmin).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	name := strings.TrimSpace(fullName)
	if name == "" {
		name = "Admin"
	}
	user := User{
		FullName: name,
		Role:     constants.UserRoleAdmin,
		IsActive: true,
	}
	if err := DB.Create(&user).Error; err != nil {
		return err
	}
	logger.Warnw("default_admin_user_created", "full_name", name, "user_id", user.ID)
	return nil
}
