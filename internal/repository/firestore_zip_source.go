package repository

import (
	"context"
	"fmt"
	"log"

	"cloud.google.com/go/firestore"

	"PestPro-App/internal/domain/model"
	"PestPro-App/internal/domain/repository"
)

// ZipEntriesCollection ZIP対応表を格納するFirestoreコレクション名
const ZipEntriesCollection = "zipEntries"

// FirestoreZipSource Firestoreのコレクションから ZIP対応表を読み込む
type FirestoreZipSource struct {
	client *firestore.Client
}

// NewFirestoreZipSource 新しいFirestoreZipSourceを作成
func NewFirestoreZipSource(client *firestore.Client) repository.ZipSource {
	return &FirestoreZipSource{client: client}
}

func (s *FirestoreZipSource) Name() string {
	return "firestore"
}

func (s *FirestoreZipSource) FetchZipEntries(ctx context.Context) ([]model.ZipEntry, error) {
	docs, err := s.client.Collection(ZipEntriesCollection).Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("ZIP対応表の取得に失敗しました: %w", err)
	}

	entries := make([]model.ZipEntry, 0, len(docs))
	for _, doc := range docs {
		var entry model.ZipEntry
		if err := doc.DataTo(&entry); err != nil {
			log.Printf("⚠️ ZIPドキュメント %s の変換に失敗、スキップします: %v", doc.Ref.ID, err)
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
