// Package browse は取引閲覧画面のデータ取得とキャッシュの整合を担います。
//
// 社員一覧、全取引のページ、社員別取引の 3 つのキャッシュを持ち、Coordinator が
// 「全取引」と「社員別」のどちらを表示元とするかを決めます。各キャッシュは世代番号で
// 現在のリクエストを識別し、置き換えられたリクエストの応答は到着時に破棄します。
package browse
