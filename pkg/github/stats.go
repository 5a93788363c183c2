package github

import (
	"context"
	"time"
)

// Operation names used for call tallies and timing reports.
const (
	OpAccount      = "account"
	OpFollowers    = "followers"
	OpCommits      = "commits"
	OpRepositories = "repositories"
)

// Affiliation classifies a repository's relationship to the queried account.
// Used to select which repositories count toward a metric.
type Affiliation string

const (
	AffiliationOwner              Affiliation = "OWNER"
	AffiliationCollaborator       Affiliation = "COLLABORATOR"
	AffiliationOrganizationMember Affiliation = "ORGANIZATION_MEMBER"
)

// AllAffiliations returns every affiliation, for metrics that count any
// repository the account is attached to.
func AllAffiliations() []Affiliation {
	return []Affiliation{AffiliationOwner, AffiliationCollaborator, AffiliationOrganizationMember}
}

// User identifies the queried account.
type User struct {
	ID        string
	CreatedAt time.Time
}

const accountQuery = `
query($login: String!) {
    user(login: $login) {
        id
        createdAt
    }
}`

// UserCreated returns the account's node id and creation time.
func (c *Client) UserCreated(ctx context.Context) (User, error) {
	var data struct {
		User struct {
			ID        string    `json:"id"`
			CreatedAt time.Time `json:"createdAt"`
		} `json:"user"`
	}
	if err := c.do(ctx, OpAccount, accountQuery, map[string]any{"login": c.login}, &data); err != nil {
		return User{}, err
	}
	return User{ID: data.User.ID, CreatedAt: data.User.CreatedAt}, nil
}

const followersQuery = `
query($login: String!) {
    user(login: $login) {
        followers {
            totalCount
        }
    }
}`

// Followers returns the account's follower count.
func (c *Client) Followers(ctx context.Context) (int, error) {
	var data struct {
		User struct {
			Followers struct {
				TotalCount int `json:"totalCount"`
			} `json:"followers"`
		} `json:"user"`
	}
	if err := c.do(ctx, OpFollowers, followersQuery, map[string]any{"login": c.login}, &data); err != nil {
		return 0, err
	}
	return data.User.Followers.TotalCount, nil
}

const commitsQuery = `
query($start_date: DateTime!, $end_date: DateTime!, $login: String!) {
    user(login: $login) {
        contributionsCollection(from: $start_date, to: $end_date) {
            contributionCalendar {
                totalContributions
            }
        }
    }
}`

// Contributions returns the account's total contribution count in [from, to].
func (c *Client) Contributions(ctx context.Context, from, to time.Time) (int, error) {
	vars := map[string]any{
		"login":      c.login,
		"start_date": from.UTC().Format(time.RFC3339),
		"end_date":   to.UTC().Format(time.RFC3339),
	}
	var data struct {
		User struct {
			ContributionsCollection struct {
				ContributionCalendar struct {
					TotalContributions int `json:"totalContributions"`
				} `json:"contributionCalendar"`
			} `json:"contributionsCollection"`
		} `json:"user"`
	}
	if err := c.do(ctx, OpCommits, commitsQuery, vars, &data); err != nil {
		return 0, err
	}
	return data.User.ContributionsCollection.ContributionCalendar.TotalContributions, nil
}

const repositoriesQuery = `
query($owner_affiliation: [RepositoryAffiliation], $login: String!, $cursor: String) {
    user(login: $login) {
        repositories(first: 100, after: $cursor, ownerAffiliations: $owner_affiliation) {
            totalCount
            edges {
                node {
                    ... on Repository {
                        nameWithOwner
                        stargazers {
                            totalCount
                        }
                    }
                }
            }
            pageInfo {
                endCursor
                hasNextPage
            }
        }
    }
}`

type repositoriesPage struct {
	User struct {
		Repositories struct {
			TotalCount int `json:"totalCount"`
			Edges      []struct {
				Node struct {
					NameWithOwner string `json:"nameWithOwner"`
					Stargazers    struct {
						TotalCount int `json:"totalCount"`
					} `json:"stargazers"`
				} `json:"node"`
			} `json:"edges"`
			PageInfo struct {
				EndCursor   string `json:"endCursor"`
				HasNextPage bool   `json:"hasNextPage"`
			} `json:"pageInfo"`
		} `json:"repositories"`
	} `json:"user"`
}

func (c *Client) repositoriesPage(ctx context.Context, affiliations []Affiliation, cursor string) (*repositoriesPage, error) {
	vars := map[string]any{
		"login":             c.login,
		"owner_affiliation": affiliations,
	}
	if cursor != "" {
		vars["cursor"] = cursor
	}
	var data repositoriesPage
	if err := c.do(ctx, OpRepositories, repositoriesQuery, vars, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// RepoCount returns the number of repositories attached to the account under
// the given affiliations.
func (c *Client) RepoCount(ctx context.Context, affiliations []Affiliation) (int, error) {
	page, err := c.repositoriesPage(ctx, affiliations, "")
	if err != nil {
		return 0, err
	}
	return page.User.Repositories.TotalCount, nil
}

// StarCount sums stargazers across every repository attached to the account
// under the given affiliations, following pagination cursors.
func (c *Client) StarCount(ctx context.Context, affiliations []Affiliation) (int, error) {
	total := 0
	cursor := ""
	for {
		page, err := c.repositoriesPage(ctx, affiliations, cursor)
		if err != nil {
			return 0, err
		}
		repos := page.User.Repositories
		for _, edge := range repos.Edges {
			total += edge.Node.Stargazers.TotalCount
		}
		if !repos.PageInfo.HasNextPage {
			return total, nil
		}
		cursor = repos.PageInfo.EndCursor
	}
}
