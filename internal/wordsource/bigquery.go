package wordsource

import (
	"context"
	"fmt"

	"cloud.google.com/go/bigquery"
	"google.golang.org/api/iterator"

	"crosswarped.com/boggle/internal/wordlist"
)

// BigQuery runs Query and takes the first column of each row as a word.
type BigQuery struct {
	Project  string
	Query    string
	Location string
	Filter   wordlist.Filter
}

func (b *BigQuery) Words(ctx context.Context) ([]string, error) {
	client, err := bigquery.NewClient(ctx, b.Project)
	if err != nil {
		return nil, fmt.Errorf("bigquery.NewClient: %w", err)
	}
	defer client.Close()

	q := client.Query(b.Query)
	q.Location = b.Location

	job, err := q.Run(ctx)
	if err != nil {
		return nil, fmt.Errorf("q.Run: %w", err)
	}
	status, err := job.Wait(ctx)
	if err != nil {
		return nil, fmt.Errorf("job.Wait: %w", err)
	}
	if err := status.Err(); err != nil {
		return nil, fmt.Errorf("status.Err: %w", err)
	}
	it, err := job.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("job.Read: %w", err)
	}

	var words []string
	for {
		var row []bigquery.Value
		err := it.Next(&row)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("it.Next: %w", err)
		}

		raw, err := rowWord(row)
		if err != nil {
			return nil, err
		}
		if word, ok := b.Filter.Accept(raw); ok {
			words = append(words, word)
		}
	}
	return words, nil
}

func rowWord(row []bigquery.Value) (string, error) {
	if len(row) == 0 {
		return "", fmt.Errorf("row has no columns")
	}
	word, ok := row[0].(string)
	if !ok {
		return "", fmt.Errorf("row[0] is not a string: %v", row[0])
	}
	return word, nil
}
