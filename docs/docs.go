// Package docs 由 swag init 生成，手工改动会在下次生成时被覆盖
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/health": {"get": {"tags": ["系统"], "summary": "健康检查", "responses": {"200": {"description": "OK"}}}},
        "/api/posts": {"post": {"tags": ["帖子"], "summary": "发帖", "security": [{"BearerAuth": []}], "responses": {"201": {"description": "Created"}}}},
        "/api/posts/feed": {"get": {"tags": ["帖子"], "summary": "个人 feed", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}},
        "/api/posts/my": {"get": {"tags": ["帖子"], "summary": "我的帖子", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}},
        "/api/posts/search": {"get": {"tags": ["帖子"], "summary": "搜索帖子", "responses": {"200": {"description": "OK"}}}},
        "/api/posts/user/{user_id}": {"get": {"tags": ["帖子"], "summary": "用户帖子列表", "responses": {"200": {"description": "OK"}}}},
        "/api/posts/{post_id}": {
            "get": {"tags": ["帖子"], "summary": "帖子详情", "responses": {"200": {"description": "OK"}}},
            "put": {"tags": ["帖子"], "summary": "修改帖子", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["帖子"], "summary": "删除帖子", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}
        },
        "/api/likes": {"post": {"tags": ["点赞"], "summary": "点赞", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}},
        "/api/likes/{post_id}": {"delete": {"tags": ["点赞"], "summary": "取消点赞", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}},
        "/api/likes/post/{post_id}": {"get": {"tags": ["点赞"], "summary": "帖子点赞列表", "responses": {"200": {"description": "OK"}}}},
        "/api/likes/user/{user_id}": {"get": {"tags": ["点赞"], "summary": "用户点赞过的帖子", "responses": {"200": {"description": "OK"}}}},
        "/api/likes/status/{post_id}": {"get": {"tags": ["点赞"], "summary": "点赞状态", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}},
        "/api/comments": {"post": {"tags": ["评论"], "summary": "发表评论", "security": [{"BearerAuth": []}], "responses": {"201": {"description": "Created"}}}},
        "/api/comments/{comment_id}": {
            "put": {"tags": ["评论"], "summary": "修改评论", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["评论"], "summary": "删除评论", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}
        },
        "/api/comments/post/{post_id}": {"get": {"tags": ["评论"], "summary": "评论列表", "responses": {"200": {"description": "OK"}}}},
        "/api/users/register": {"post": {"tags": ["用户"], "summary": "注册", "responses": {"201": {"description": "Created"}}}},
        "/api/users/search": {"get": {"tags": ["用户"], "summary": "搜索用户", "responses": {"200": {"description": "OK"}}}},
        "/api/users/profile": {"put": {"tags": ["用户"], "summary": "修改资料", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}},
        "/api/users/following": {"get": {"tags": ["关系链"], "summary": "查询关注列表", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}},
        "/api/users/followers": {"get": {"tags": ["关系链"], "summary": "查询粉丝列表", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}},
        "/api/users/{user_id}/profile": {"get": {"tags": ["用户"], "summary": "用户资料", "responses": {"200": {"description": "OK"}}}},
        "/api/users/{user_id}/follow": {"post": {"tags": ["关系链"], "summary": "关注用户", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}},
        "/api/users/{user_id}/unfollow": {"delete": {"tags": ["关系链"], "summary": "取消关注", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}},
        "/api/users/{user_id}/stats": {"get": {"tags": ["关系链"], "summary": "关注统计", "responses": {"200": {"description": "OK"}}}}
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Social Feed API",
	Description:      "关注关系、帖子、评论、点赞与个人 feed",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
