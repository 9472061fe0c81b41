package service

import "errors"

// ErrForbidden 操作者不是资源所有者
var ErrForbidden = errors.New("没有权限操作该资源")

// authorizeOwner 所有权校验：只有资源所有者才能变更或删除资源。
// 仅用于 update/delete；创建对所有登录用户开放，读取公开。
func authorizeOwner(actingUserID, ownerID int64) error {
	if actingUserID != ownerID {
		return ErrForbidden
	}
	return nil
}
