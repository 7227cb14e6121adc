package service

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"PestPro-App/internal/domain/model"
)

// ErrInvalidZip ZIPコードが整数として解釈できない
var ErrInvalidZip = errors.New("無効なZIPコードです")

// ParseZip 入力文字列を整数のZIPコードに変換する
// 先頭のゼロは失われる（"00501" -> 501）。正規化は行わない
func ParseZip(raw string) (int, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, fmt.Errorf("%w: 空文字列", ErrInvalidZip)
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidZip, raw)
	}
	return n, nil
}

// HasLeadingZero 整数変換で先頭のゼロが失われる入力かチェック
func HasLeadingZero(raw string) bool {
	s := strings.TrimSpace(raw)
	return len(s) > 1 && s[0] == '0'
}

// LookupZip ZIPテーブルを先頭から走査し、完全一致する最初のエントリを返す
func LookupZip(entries []model.ZipEntry, zip int) (*model.ZipEntry, bool) {
	for i := range entries {
		if entries[i].Zip.Int() == zip {
			return &entries[i], true
		}
	}
	return nil, false
}
