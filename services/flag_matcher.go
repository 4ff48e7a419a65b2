// file: services/flag_matcher.go
package services

import "strings"

// MatchFlag 判断提交的 Flag 与题目存储的 Flag 是否一致
// 两侧都先去掉首尾空白；大小写不敏感的题目统一转小写后比较
// 不做模糊匹配，也不做防时序攻击处理（Flag 明文可信，非密钥场景）
func MatchFlag(submitted, stored string, caseSensitive bool) bool {
	submitted = strings.TrimSpace(submitted)
	stored = strings.TrimSpace(stored)
	if !caseSensitive {
		submitted = strings.ToLower(submitted)
		stored = strings.ToLower(stored)
	}
	return submitted == stored
}
