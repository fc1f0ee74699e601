package services

import (
	"fmt"
	"sync"
	"testing"

	"doc-qa-assistant/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentStore_SaveAndGet(t *testing.T) {
	store := NewDocumentStore()
	doc := &models.Document{ID: "abc12345", Filename: "a.txt", Text: "hello"}

	require.NoError(t, store.Save(doc))

	got, err := store.Get("abc12345")
	require.NoError(t, err)
	assert.Same(t, doc, got)
	assert.True(t, store.Exists("abc12345"))
	assert.Equal(t, 1, store.Len())
}

func TestDocumentStore_Errors(t *testing.T) {
	store := NewDocumentStore()
	require.NoError(t, store.Save(&models.Document{ID: "dup"}))

	assert.ErrorIs(t, store.Save(&models.Document{ID: "dup"}), ErrDuplicateID)
	assert.Equal(t, 1, store.Len())

	_, err := store.Get("missing")
	assert.ErrorIs(t, err, ErrDocumentNotFound)
	assert.False(t, store.Exists("missing"))
}

func TestDocumentStore_ListKeepsUploadOrder(t *testing.T) {
	store := NewDocumentStore()
	for _, id := range []string{"zz", "aa", "mm"} {
		require.NoError(t, store.Save(&models.Document{ID: id}))
	}

	var ids []string
	for _, d := range store.List() {
		ids = append(ids, d.ID)
	}
	assert.Equal(t, []string{"zz", "aa", "mm"}, ids)
	assert.Empty(t, NewDocumentStore().List())
}

func TestDocumentStore_ConcurrentSaves(t *testing.T) {
	store := NewDocumentStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = store.Save(&models.Document{ID: fmt.Sprintf("doc-%d", i)})
			_ = store.List()
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 50, store.Len())
	assert.Len(t, store.List(), 50)
}
