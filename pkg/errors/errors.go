package errors

import "errors"

// ErrImmutableRecord 门禁事件入库后不可修改（processed 标记除外）
var ErrImmutableRecord = errors.New("门禁事件入库后不可修改")
