package common

import (
	"math/rand"

	"github.com/bwmarrin/snowflake"
)

const (
	ENABLED  = "enabled"
	DISABLED = "disabled"
)

var snowflakeNode *snowflake.Node

func init() {
	var err error
	snowflakeNode, err = snowflake.NewNode(rand.Int63n(1023))
	if err != nil {
		panic(err)
	}
}

// UUIDint64 returns a snowflake-based int64 identifier.
func UUIDint64() int64 {
	return snowflakeNode.Generate().Int64()
}

// UUIDstr returns a snowflake-based string identifier.
func UUIDstr() string {
	return snowflakeNode.Generate().String()
}

func IfEmptyStr(src string, defval string) string {
	if src == "" {
		return defval
	}
	return src
}
