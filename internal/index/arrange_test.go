package index_test

import (
	"errors"
	"testing"

	"github.com/HootingYard/ubercoordinator/internal/domain/content"
	domainerr "github.com/HootingYard/ubercoordinator/internal/domain/errors"
	"github.com/HootingYard/ubercoordinator/internal/index"
)

func TestArrangeMonthsAndDays(t *testing.T) {
	articles := []content.Article{
		article("2004-02-03-late", "Late Entry"),
		article("2004-01-05-dobson", "Dobson"),
		article("2004-01-05-quote", "“Some words"),
		article("2004-01-01-intro", "Hooting Yard Archive, January 2004"),
		article("2004-01-02-first", "First"),
	}

	var loaded []string
	months, err := index.Arrange(articles, func(a content.Article) (string, error) {
		loaded = append(loaded, a.ID)
		return "<div>intro</div>", nil
	})
	if err != nil {
		t.Fatalf("Arrange returned error: %v", err)
	}
	if len(months) != 2 {
		t.Fatalf("expected 2 months, got %d", len(months))
	}

	jan := months[0]
	if !jan.Date.Equal(date("2004-01-01")) || jan.Introduction != "<div>intro</div>" {
		t.Fatalf("unexpected January: %+v", jan)
	}
	if len(loaded) != 1 || loaded[0] != "2004-01-01-intro" {
		t.Fatalf("unexpected introductions loaded: %v", loaded)
	}
	if len(jan.Days) != 2 {
		t.Fatalf("expected 2 days in January, got %+v", jan.Days)
	}
	if jan.Days[0].Articles[0].ID != "2004-01-02-first" {
		t.Fatalf("unexpected first day: %+v", jan.Days[0])
	}
	fifth := jan.Days[1]
	if !fifth.Date.Equal(date("2004-01-05")) || fifth.Articles[0].ID != "2004-01-05-quote" || fifth.Articles[1].ID != "2004-01-05-dobson" {
		t.Fatalf("expected quotation first on 5 January, got %+v", fifth.Articles)
	}

	feb := months[1]
	if feb.Introduction != "" || len(feb.Days) != 1 {
		t.Fatalf("unexpected February: %+v", feb)
	}
}

func TestArrangeWithoutLoader(t *testing.T) {
	months, err := index.Arrange([]content.Article{
		article("2005-03-01-intro", "Hooting Yard Archive, March 2005"),
	}, nil)
	if err != nil {
		t.Fatalf("Arrange returned error: %v", err)
	}
	if len(months) != 1 || months[0].Introduction != "" || len(months[0].Days) != 0 {
		t.Fatalf("unexpected months: %+v", months)
	}
}

func TestArrangeRejectsTwoIntroductions(t *testing.T) {
	_, err := index.Arrange([]content.Article{
		article("2005-03-01-intro", "Hooting Yard Archive, March 2005"),
		article("2005-03-02-again", "Hooting Yard Archive, March 2005 again"),
	}, nil)
	if !errors.Is(err, domainerr.ErrDuplicateIntro) {
		t.Fatalf("expected ErrDuplicateIntro, got %v", err)
	}
}

func TestArrangeIsDeterministic(t *testing.T) {
	articles := []content.Article{
		article("2004-06-01-b", "B"),
		article("2004-06-01-a", "A"),
		article("2004-05-30-c", "C"),
	}
	first, err := index.Arrange(articles, nil)
	if err != nil {
		t.Fatalf("Arrange returned error: %v", err)
	}
	second, _ := index.Arrange(articles, nil)
	if len(first) != len(second) {
		t.Fatal("month count differs between runs")
	}
	for i := range first {
		for j := range first[i].Days {
			for k, a := range first[i].Days[j].Articles {
				if second[i].Days[j].Articles[k].ID != a.ID {
					t.Fatalf("order differs at %d/%d/%d", i, j, k)
				}
			}
		}
	}
	if got := first[1].Days[0].Articles; got[0].ID != "2004-06-01-b" || got[1].ID != "2004-06-01-a" {
		t.Fatalf("expected given order within a day, got %+v", got)
	}
	if articles[0].ID != "2004-06-01-b" {
		t.Fatal("Arrange reordered its input")
	}
}
