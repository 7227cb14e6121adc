package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// ZipEntry ZIPコードから郡・州への対応を表す静的なルックアップデータ
type ZipEntry struct {
	Zip        ZipCode `json:"zip" db:"zip" firestore:"zip"`                        // ZIPコード（整数）
	CountyName string  `json:"county_name" db:"county_name" firestore:"county_name"` // 郡名
	StateName  string  `json:"state_name" db:"state_name" firestore:"state_name"`    // 州名（古いテーブルには存在しない）
}

// HasState 州名が設定されているかチェック
func (e *ZipEntry) HasState() bool {
	return e.StateName != ""
}

// ZipCode 整数として扱うZIPコード
// 先頭のゼロは保持されない（"00501" は 501 になる）
type ZipCode int

// UnmarshalJSON 数値と数字文字列の両方を受け付ける
func (z *ZipCode) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("zipの文字列パースに失敗: %w", err)
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("zipが数値ではありません: %q", s)
		}
		*z = ZipCode(n)
		return nil
	}

	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("zipの数値パースに失敗: %w", err)
	}
	*z = ZipCode(n)
	return nil
}

// Int ZIPコードを int として取得
func (z ZipCode) Int() int {
	return int(z)
}
