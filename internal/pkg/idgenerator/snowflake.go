package idgenerator

import (
	"hash/fnv"
	"strconv"
	"sync"
	"time"
)

// ID 布局：1 位符号 | 41 位毫秒时间戳 | 10 位哈希 | 12 位序列号
const (
	timestampBits = 41
	hashBits      = 10
	sequenceBits  = 12

	timestampShift = hashBits + sequenceBits
	hashShift      = sequenceBits

	sequenceMask  = (1 << sequenceBits) - 1
	hashMask      = (1 << hashBits) - 1
	timestampMask = (1 << timestampBits) - 1
)

// epoch 2025-01-01 00:00:00 UTC
var epoch = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC).UnixMilli()

// Generator 生成投递记录 ID，同一个 (senderID, key) 落到同一个哈希槽
type Generator struct {
	mu       sync.Mutex
	sequence int64
	now      func() time.Time
}

func NewGenerator() *Generator {
	return &Generator{now: time.Now}
}

// GenerateID 生成 ID
func (g *Generator) GenerateID(senderID int64, key string) int64 {
	g.mu.Lock()
	seq := g.sequence
	g.sequence = (g.sequence + 1) & sequenceMask
	g.mu.Unlock()

	ts := (g.now().UnixMilli() - epoch) & timestampMask
	return ts<<timestampShift | (Hash(senderID, key)%(hashMask+1))<<hashShift | seq
}

// Hash 对 (senderID, key) 做 FNV-1a 哈希，结果非负
func Hash(senderID int64, key string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(strconv.FormatInt(senderID, 10)))
	_, _ = h.Write([]byte{':'})
	_, _ = h.Write([]byte(key))
	return int64(h.Sum64() >> 1)
}

func ExtractTimestamp(id int64) time.Time {
	return time.UnixMilli((id>>timestampShift)&timestampMask + epoch)
}

func ExtractHashValue(id int64) int64 {
	return (id >> hashShift) & hashMask
}

func ExtractSequence(id int64) int64 {
	return id & sequenceMask
}
