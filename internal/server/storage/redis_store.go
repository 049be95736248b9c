package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// Redis key 前缀
	tokenKeyPrefix = "auth:token:"
	statsKeyPrefix = "game:stats:"

	// 对局结果写入的超时
	recordTimeout = 3 * time.Second
)

// ErrTokenNotFound 令牌不存在或已过期
var ErrTokenNotFound = errors.New("token not found")

// Identity 令牌解析出的用户身份
type Identity struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
}

// TokenResolver 身份解析协作方：把登录系统签发的令牌换成用户身份。
// 游戏核心只依赖这一个窄接口。
type TokenResolver interface {
	Resolve(ctx context.Context, token string) (Identity, error)
}

// MatchResult 一局的结果，用于累计战绩
type MatchResult struct {
	Seats        [3]Identity
	WinnerSeat   int
	LandlordSeat int
	Multiplier   int
}

// ResultRecorder 对局结果记录协作方
type ResultRecorder interface {
	RecordResult(ctx context.Context, result MatchResult) error
}

// RedisStore 基于 Redis 的令牌解析与战绩存储
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore 创建 Redis 存储
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Resolve 把令牌换成用户身份。登录系统把身份以 JSON 写在
// auth:token:<token> 下，这里只读不写。
func (rs *RedisStore) Resolve(ctx context.Context, token string) (Identity, error) {
	if token == "" {
		return Identity{}, ErrTokenNotFound
	}

	data, err := rs.client.Get(ctx, tokenKeyPrefix+token).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Identity{}, ErrTokenNotFound
		}
		return Identity{}, err
	}

	var id Identity
	if err := json.Unmarshal(data, &id); err != nil {
		return Identity{}, fmt.Errorf("解析身份数据失败: %w", err)
	}
	if id.UserID == "" {
		return Identity{}, ErrTokenNotFound
	}
	return id, nil
}

// RecordResult 累计三个座位的战绩。失败只影响统计，不影响对局。
func (rs *RedisStore) RecordResult(ctx context.Context, result MatchResult) error {
	ctx, cancel := context.WithTimeout(ctx, recordTimeout)
	defer cancel()

	landlordWin := result.WinnerSeat == result.LandlordSeat

	pipe := rs.client.Pipeline()
	for seat, id := range result.Seats {
		if id.UserID == "" {
			continue
		}
		key := statsKeyPrefix + id.UserID
		isLandlord := seat == result.LandlordSeat
		won := landlordWin == isLandlord

		pipe.HIncrBy(ctx, key, "total_games", 1)
		if won {
			pipe.HIncrBy(ctx, key, "wins", 1)
		} else {
			pipe.HIncrBy(ctx, key, "losses", 1)
		}
		if isLandlord {
			pipe.HIncrBy(ctx, key, "landlord_games", 1)
			if won {
				pipe.HIncrBy(ctx, key, "landlord_wins", 1)
			}
		}
		pipe.HSet(ctx, key, "name", id.Name)
	}
	_, err := pipe.Exec(ctx)
	return err
}

// PlayerStats 单个玩家的累计战绩
type PlayerStats struct {
	Name          string `json:"name"`
	TotalGames    int    `json:"total_games"`
	Wins          int    `json:"wins"`
	Losses        int    `json:"losses"`
	LandlordGames int    `json:"landlord_games"`
	LandlordWins  int    `json:"landlord_wins"`
}

// LoadStats 读取玩家战绩，不存在时返回零值
func (rs *RedisStore) LoadStats(ctx context.Context, userID string) (PlayerStats, error) {
	var stats PlayerStats

	fields, err := rs.client.HGetAll(ctx, statsKeyPrefix+userID).Result()
	if err != nil {
		return stats, err
	}

	stats.Name = fields["name"]
	for field, dst := range map[string]*int{
		"total_games":    &stats.TotalGames,
		"wins":           &stats.Wins,
		"losses":         &stats.Losses,
		"landlord_games": &stats.LandlordGames,
		"landlord_wins":  &stats.LandlordWins,
	} {
		if v, ok := fields[field]; ok {
			fmt.Sscanf(v, "%d", dst)
		}
	}
	return stats, nil
}
