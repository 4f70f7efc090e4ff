package git

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestStash(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c := testClient()
	repoPath := setupTestRepo(t, "main")

	if n := c.StashCount(ctx, repoPath); n != 0 {
		t.Fatalf("StashCount on fresh repo = %d, want 0", n)
	}

	writeFile(t, repoPath, "README.md", "# dirty\n")
	writeFile(t, repoPath, "untracked.txt", "u\n")

	if err := c.Stash(ctx, repoPath, "wip-main-123"); err != nil {
		t.Fatalf("Stash failed: %v", err)
	}
	if c.HasUncommittedChanges(ctx, repoPath) {
		t.Error("work tree still dirty after Stash")
	}
	if n := c.StashCount(ctx, repoPath); n != 1 {
		t.Errorf("StashCount = %d, want 1", n)
	}

	out, err := c.output(ctx, repoPath, "stash", "list")
	if err != nil {
		t.Fatalf("stash list: %v", err)
	}
	if !strings.Contains(out, "wip-main-123") {
		t.Errorf("stash list %q does not contain message", out)
	}

	if _, err := os.Stat(filepath.Join(repoPath, "untracked.txt")); !os.IsNotExist(err) {
		t.Errorf("untracked file still present after Stash: %v", err)
	}
}

func TestStash_Clean(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c := testClient()
	repoPath := setupTestRepo(t, "main")

	// git exits 0 with "No local changes to save"; no entry is created.
	_ = c.Stash(ctx, repoPath, "nothing")
	if n := c.StashCount(ctx, repoPath); n != 0 {
		t.Errorf("StashCount = %d, want 0", n)
	}
}

func TestCheckout(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c := testClient()
	repoPath := setupTestRepo(t, "main")

	if err := c.CheckoutNew(ctx, repoPath, "changeset/x"); err != nil {
		t.Fatalf("CheckoutNew failed: %v", err)
	}
	if got := c.CurrentBranch(ctx, repoPath); got != "changeset/x" {
		t.Errorf("CurrentBranch = %q, want changeset/x", got)
	}
	if !c.BranchExists(ctx, repoPath, "changeset/x") {
		t.Error("BranchExists(changeset/x) = false")
	}
	if err := c.CheckoutNew(ctx, repoPath, "changeset/x"); err == nil {
		t.Error("CheckoutNew of existing branch succeeded, want error")
	}

	if err := c.Checkout(ctx, repoPath, "main"); err != nil {
		t.Fatalf("Checkout failed: %v", err)
	}
	if err := c.Checkout(ctx, repoPath, "missing"); err == nil {
		t.Error("Checkout of missing branch succeeded, want error")
	}
}

func TestCheckoutTracking(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c := testClient()
	repoPath, _ := setupTestRepoWithOrigin(t)

	runGit(t, repoPath, "checkout", "-b", "feature/remote")
	commitFile(t, repoPath, "remote.txt", "r\n", "")
	runGit(t, repoPath, "push", "origin", "feature/remote")
	runGit(t, repoPath, "checkout", "main")
	runGit(t, repoPath, "branch", "-D", "feature/remote")

	local := LocalNameForRemote("origin/feature/remote")
	if err := c.CheckoutTracking(ctx, repoPath, local, "origin/feature/remote"); err != nil {
		t.Fatalf("CheckoutTracking failed: %v", err)
	}
	if got := c.CurrentBranch(ctx, repoPath); got != local {
		t.Errorf("CurrentBranch = %q, want %q", got, local)
	}
	if !c.HasUpstream(ctx, repoPath) {
		t.Error("HasUpstream = false after CheckoutTracking")
	}

	cs := c.LocalChangesets(ctx, repoPath)
	if len(cs) != 1 || cs[0].TrackingBranch != "origin/feature/remote" {
		t.Errorf("LocalChangesets = %+v, want tracking origin/feature/remote", cs)
	}

	// Existing local branch: checkout and re-point upstream.
	runGit(t, repoPath, "checkout", "main")
	runGit(t, repoPath, "branch", "--unset-upstream", local)
	if err := c.CheckoutTracking(ctx, repoPath, local, "origin/feature/remote"); err != nil {
		t.Fatalf("CheckoutTracking on existing branch failed: %v", err)
	}
	if !c.HasUpstream(ctx, repoPath) {
		t.Error("HasUpstream = false after re-tracking existing branch")
	}
}

func TestPullRebase(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c := testClient()
	repoPath, originPath := setupTestRepoWithOrigin(t)

	other := filepath.Join(filepath.Dir(repoPath), "other")
	runGit(t, "", "clone", originPath, other)
	configureTestRepo(t, other)
	commitFile(t, other, "upstream.txt", "u\n", "")
	runGit(t, other, "push", "origin", "main")

	if err := c.PullRebase(ctx, repoPath); err != nil {
		t.Fatalf("PullRebase failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(repoPath, "upstream.txt")); err != nil {
		t.Errorf("upstream commit not pulled: %v", err)
	}
}

func TestFetchAndRebase(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c := testClient()
	repoPath, originPath := setupTestRepoWithOrigin(t)

	runGit(t, repoPath, "checkout", "-b", "changeset/local")
	commitFile(t, repoPath, "local.txt", "l\n", "")
	if c.HasUpstream(ctx, repoPath) {
		t.Fatal("new local branch unexpectedly has an upstream")
	}

	other := filepath.Join(filepath.Dir(repoPath), "other")
	runGit(t, "", "clone", originPath, other)
	configureTestRepo(t, other)
	commitFile(t, other, "upstream.txt", "u\n", "")
	runGit(t, other, "push", "origin", "main")

	if err := c.FetchBranch(ctx, repoPath, "main"); err != nil {
		t.Fatalf("FetchBranch failed: %v", err)
	}
	if err := c.Rebase(ctx, repoPath, "origin/main"); err != nil {
		t.Fatalf("Rebase failed: %v", err)
	}
	if got := c.Divergence(ctx, repoPath, "origin/main"); got != (Divergence{Ahead: 1}) {
		t.Errorf("Divergence after rebase = %+v, want {1 0}", got)
	}
}

func TestCommitAll(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c := testClient()
	repoPath := setupTestRepo(t, "main")

	writeFile(t, repoPath, "README.md", "# changed\n")
	writeFile(t, repoPath, "new.txt", "new\n")

	if err := c.CommitAll(ctx, repoPath, "wip"); err != nil {
		t.Fatalf("CommitAll failed: %v", err)
	}
	if c.HasUncommittedChanges(ctx, repoPath) {
		t.Error("work tree dirty after CommitAll")
	}
	if err := c.CommitAll(ctx, repoPath, "empty"); err == nil {
		t.Error("CommitAll with nothing to commit succeeded, want error")
	}
}

func TestGitDir(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c := testClient()
	repoPath := setupTestRepo(t, "main")

	got, err := c.GitDir(ctx, repoPath)
	if err != nil {
		t.Fatalf("GitDir failed: %v", err)
	}
	if got != filepath.Join(repoPath, ".git") {
		t.Errorf("GitDir = %q, want %q", got, filepath.Join(repoPath, ".git"))
	}

	if _, err := c.GitDir(ctx, resolveTempDir(t)); !errors.Is(err, ErrNotRepository) {
		t.Errorf("GitDir outside repo error = %v, want ErrNotRepository", err)
	}
}

func TestFileLock(t *testing.T) {
	t.Parallel()

	path := filepath.Join(resolveTempDir(t), "test.lock")

	first := NewFileLock(path)
	if err := first.Lock(context.Background()); err != nil {
		t.Fatalf("Lock failed: %v", err)
	}

	second := NewFileLock(path)
	ok, err := second.TryLock()
	if err != nil {
		t.Fatalf("TryLock failed: %v", err)
	}
	if ok {
		t.Fatal("TryLock succeeded while lock was held")
	}

	if err := first.Unlock(); err != nil {
		t.Fatalf("Unlock failed: %v", err)
	}

	ok, err = second.TryLock()
	if err != nil || !ok {
		t.Fatalf("TryLock after Unlock = %v, %v, want true, nil", ok, err)
	}
	if err := second.Unlock(); err != nil {
		t.Fatalf("Unlock failed: %v", err)
	}
	if err := second.Unlock(); err != nil {
		t.Errorf("second Unlock = %v, want nil", err)
	}
}

func TestClientLock(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c := testClient()
	repoPath := setupTestRepo(t, "main")

	release, err := c.Lock(ctx, repoPath)
	if err != nil {
		t.Fatalf("Lock failed: %v", err)
	}

	probe := NewFileLock(filepath.Join(repoPath, ".git", LockFileName))
	if ok, _ := probe.TryLock(); ok {
		_ = probe.Unlock()
		t.Fatal("repository lock not held")
	}

	release()
	if ok, err := probe.TryLock(); err != nil || !ok {
		t.Fatalf("TryLock after release = %v, %v", ok, err)
	}
	_ = probe.Unlock()

	if _, err := c.Lock(ctx, resolveTempDir(t)); !errors.Is(err, ErrNotRepository) {
		t.Errorf("Lock outside repo error = %v, want ErrNotRepository", err)
	}

	// The lock file lives in the git dir and must not dirty the work tree.
	if c.HasUncommittedChanges(ctx, repoPath) {
		t.Error("lock file shows up as a work tree change")
	}
}

func TestClientLock_Cancelled(t *testing.T) {
	t.Parallel()

	c := testClient()
	repoPath := setupTestRepo(t, "main")

	holder := NewFileLock(filepath.Join(repoPath, ".git", LockFileName))
	if err := holder.Lock(context.Background()); err != nil {
		t.Fatalf("Lock failed: %v", err)
	}
	defer holder.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	start := time.Now()
	release, err := c.Lock(ctx, repoPath)
	if err == nil {
		release()
		t.Fatal("Lock succeeded while another holder had it")
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Lock error = %v, want context.DeadlineExceeded", err)
	}
	if waited := time.Since(start); waited > 2*time.Second {
		t.Errorf("Lock returned %s after the deadline, want prompt return", waited)
	}
}
