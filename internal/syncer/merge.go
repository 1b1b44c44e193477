// internal/syncer/merge.go
package syncer

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"go_5_vocab_sync/internal/model"
)

// Snapshot は相手デバイスから受け取った（または相手に渡す）コレクション全体の写しです。
type Snapshot struct {
	Entries    []*model.Word
	ProducedAt time.Time
}

// Merge はローカルとリモートのスナップショットをチェックポイント基準でマージします。
// 純粋関数です。どちら側を local と呼ぶかに結果は依存せず（可換）、
// 同じ入力で繰り返し呼んでも結果は変わりません（冪等）。
//
// 解決ルール:
//   - ローカルのみ: 常に残す。checkpoint より後に作成されたものだけ LocalAdded に数える。
//     checkpoint 以前作成でリモートに無い場合は「リモートが削除した」のか
//     「リモートが最初から持っていない」のか区別できないため、残す
//     （削除はこのマージでは伝播しない。墓標を持たない設計による既知の制限）。
//   - リモートのみ: 追加する (RemoteAdded)。
//   - 両方に存在: UpdatedAt が厳密に新しい側が丸ごと勝つ（エントリ単位のLWW）。
//     UpdatedAt が同時刻で内容が異なる場合はコンフリクトとして数え、
//     内容の正規化キーの辞書順で小さい側を採用する（マージ方向に依存しない決定的な解決）。
//
// マージ結果は WordID 昇順でソートされ、入力順には依存しません。
func Merge(local []*model.Word, remote Snapshot, checkpoint time.Time) ([]*model.Word, model.SyncStats) {
	var stats model.SyncStats

	localMap := make(map[string]*model.Word, len(local))
	for _, w := range local {
		localMap[w.WordID.String()] = w
	}
	remoteMap := make(map[string]*model.Word, len(remote.Entries))
	for _, w := range remote.Entries {
		remoteMap[w.WordID.String()] = w
	}

	ids := make([]string, 0, len(localMap)+len(remoteMap))
	for id := range localMap {
		ids = append(ids, id)
	}
	for id := range remoteMap {
		if _, ok := localMap[id]; !ok {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)

	merged := make([]*model.Word, 0, len(ids))
	for _, id := range ids {
		l := localMap[id]
		r := remoteMap[id]

		switch {
		case r == nil:
			merged = append(merged, l)
			if l.CreatedAt.After(checkpoint) {
				stats.LocalAdded++
			}
		case l == nil:
			merged = append(merged, r)
			stats.RemoteAdded++
		default:
			merged = append(merged, resolve(l, r, &stats))
		}
	}

	stats.TotalMerged = len(merged)
	return merged, stats
}

// resolve は両側に存在するエントリのLWW解決を行い、統計を更新します。
func resolve(l, r *model.Word, stats *model.SyncStats) *model.Word {
	switch {
	case l.UpdatedAt.After(r.UpdatedAt):
		stats.RemoteOverwritten++
		return l
	case r.UpdatedAt.After(l.UpdatedAt):
		stats.LocalOverwritten++
		return r
	default:
		if l.ContentEquals(r) {
			return l
		}
		// 同時刻で内容が分岐している。両側の識別子は同一なので、
		// 内容の正規化キーの辞書順比較で決定的に解決する
		// （local/remoteのラベルに依存しないため可換性が保たれる）。
		stats.Conflicts++
		if strings.Compare(contentKey(l), contentKey(r)) <= 0 {
			return l
		}
		return r
	}
}

// contentKey はコンフリクト解決用の正規化キーです。
// ContentEquals が比較する内容フィールドをすべて含みます
// （含め漏れがあると同時刻コンフリクトの解決がマージ方向に依存してしまう）。
func contentKey(w *model.Word) string {
	lastReviewed := ""
	if w.LastReviewedAt != nil {
		lastReviewed = w.LastReviewedAt.UTC().Format(time.RFC3339Nano)
	}
	parts := []string{
		w.Term,
		w.Translation,
		w.Definition,
		w.Example,
		w.PartOfSpeech,
		strings.Join(w.Tags, ","),
		strconv.Itoa(w.Scheduling.IntervalDays),
		strconv.Itoa(w.Scheduling.RepetitionCount),
		strconv.FormatFloat(w.Scheduling.EaseFactor, 'f', -1, 64),
		w.Scheduling.NextReviewAt.UTC().Format(time.RFC3339Nano),
		lastReviewed,
	}
	return strings.Join(parts, "\x1f")
}

// NextCheckpoint は次のチェックポイント値を返します。
// 呼び出し元はマージ結果の保存が完了した後にのみこの値へ前進させること。
// 保存に失敗した場合はチェックポイントを据え置き、同じリモートスナップショットを
// 再処理できるようにします（Mergeは冪等なので再処理は安全です）。
func NextCheckpoint(checkpoint, producedAt time.Time) time.Time {
	if producedAt.After(checkpoint) {
		return producedAt
	}
	return checkpoint
}
