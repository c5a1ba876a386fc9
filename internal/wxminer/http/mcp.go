package http

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog/log"

	"github.com/xleven/wxminer/internal/errors"
	"github.com/xleven/wxminer/internal/wxminer/conf"
	"github.com/xleven/wxminer/pkg/util"
	"github.com/xleven/wxminer/pkg/version"
)

func (s *Service) initMCPServer() {
	s.mcpServer = server.NewMCPServer(conf.AppName, version.Version)
	s.mcpServer.AddTool(ContactTool, s.handleMCPContact)
	s.mcpServer.AddTool(ChatRoomTool, s.handleMCPChatRoom)
	s.mcpServer.AddTool(RecentChatTool, s.handleMCPRecentChat)
	s.mcpServer.AddTool(ChatLogTool, s.handleMCPChatLog)
	s.mcpServer.AddTool(CurrentTimeTool, s.handleMCPCurrentTime)
	s.mcpSSEServer = server.NewSSEServer(s.mcpServer)
	s.mcpStreamableServer = server.NewStreamableHTTPServer(s.mcpServer)
}

var ContactTool = mcp.NewTool(
	"query_contact",
	mcp.WithDescription(`查询备份中的联系人信息。可以通过昵称、别名或ID进行查询，返回匹配的联系人列表。当用户询问某人的信息或需要查找特定联系人时使用此工具。参数为空时，将返回完整联系人列表`),
	mcp.WithString("keyword", mcp.Description("联系人的搜索关键词，可以是昵称、别名或ID")),
)

var ChatRoomTool = mcp.NewTool(
	"query_chat_room",
	mcp.WithDescription(`查询备份账号参与的群聊信息。可以通过群名称或群ID进行查询，返回匹配的群聊列表（含群主和成员数）。当用户询问群聊信息或需要查找特定群聊时使用此工具。参数为空时，将返回完整群聊列表`),
	mcp.WithString("keyword", mcp.Description("群聊的搜索关键词，可以是群名称或群ID")),
)

var RecentChatTool = mcp.NewTool(
	"query_recent_chat",
	mcp.WithDescription(`查询最近会话列表，包括个人聊天和群聊，按最后活跃时间倒序。当用户想了解最近联系过的人或群组时使用此工具。不需要参数`),
)

var ChatLogTool = mcp.NewTool(
	"query_chat_log",
	mcp.WithDescription(`检索历史聊天记录，可按日期范围过滤。当用户需要查找特定信息或想了解与某人/某群的历史交流时使用此工具。

返回格式："昵称(ID) 时间\n消息内容"
查询多个对话方时，返回格式为："昵称(ID) [TalkerName(Talker)] 时间\n消息内容"

重要提示：
1. 日期格式为"2023-04-18"或"20230418"，不支持小时分钟粒度
2. start 省略时从最早记录开始，end 省略时到今天为止
3. 当用户提及"昨天"、"上周"等相对时间时，先用 current_time 工具确定基准日期`),
	mcp.WithString("talker", mcp.Description(`指定对话方（联系人或群组）
- 可使用ID、昵称或别名
- 多个对话方用","分隔，如："张三,李四,工作群"`), mcp.Required()),
	mcp.WithString("start", mcp.Description(`起始日期，格式"2023-04-01"，省略时不限制起点`)),
	mcp.WithString("end", mcp.Description(`结束日期（含当天），格式"2023-04-18"，省略时为今天`)),
)

var CurrentTimeTool = mcp.NewTool(
	"current_time",
	mcp.WithDescription(`获取当前系统时间，返回RFC3339格式的时间字符串（包含用户本地时区信息）。
使用场景：
- 当用户询问"总结今日聊天记录"、"本周都聊了啥"等当前时间问题
- 当用户提及"昨天"、"上周"、"本月"等相对时间概念，需要确定基准时间点
返回示例：2025-04-18T21:29:00+08:00
注意：此工具不需要任何输入参数，直接调用即可获取当前时间。`),
)

type ContactRequest struct {
	Keyword string `json:"keyword"`
}

func (s *Service) handleMCPContact(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var req ContactRequest
	if err := request.BindArguments(&req); err != nil {
		log.Error().Err(err).Interface("request", request.GetRawArguments()).Msg("Failed to bind arguments")
		return errors.ErrMCPTool(err), nil
	}

	list, err := s.miner.ListContact(req.Keyword)
	if err != nil {
		log.Error().Err(err).Msg("Failed to get contacts")
		return errors.ErrMCPTool(err), nil
	}
	buf := &bytes.Buffer{}
	buf.WriteString("UserName,NickName,Alias,Gender\n")
	for _, contact := range list {
		buf.WriteString(fmt.Sprintf("%s,%s,%s,%d\n", contact.UserName, contact.NickName, contact.Alias, contact.Gender))
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{
				Type: "text",
				Text: buf.String(),
			},
		},
	}, nil
}

type ChatRoomRequest struct {
	Keyword string `json:"keyword"`
}

func (s *Service) handleMCPChatRoom(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {

	var req ChatRoomRequest
	if err := request.BindArguments(&req); err != nil {
		log.Error().Err(err).Interface("request", request.GetRawArguments()).Msg("Failed to bind arguments")
		return errors.ErrMCPTool(err), nil
	}

	list, err := s.miner.ListChatRoom(req.Keyword)
	if err != nil {
		log.Error().Err(err).Msg("Failed to get chat rooms")
		return errors.ErrMCPTool(err), nil
	}
	buf := &bytes.Buffer{}
	buf.WriteString("UserName,NickName,Founder,MemberCount\n")
	for _, room := range list {
		buf.WriteString(fmt.Sprintf("%s,%s,%s,%d\n", room.UserName, room.NickName, room.Founder, len(room.Members)))
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{
				Type: "text",
				Text: buf.String(),
			},
		},
	}, nil
}

func (s *Service) handleMCPRecentChat(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {

	sessions, err := s.miner.GetSessions()
	if err != nil {
		log.Error().Err(err).Msg("Failed to get sessions")
		return errors.ErrMCPTool(err), nil
	}
	buf := &bytes.Buffer{}
	for _, session := range sessions {
		buf.WriteString(session.PlainText())
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{
				Type: "text",
				Text: buf.String(),
			},
		},
	}, nil
}

type ChatLogRequest struct {
	Talker string `json:"talker"`
	Start  string `json:"start"`
	End    string `json:"end"`
}

func (s *Service) handleMCPChatLog(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {

	var req ChatLogRequest
	if err := request.BindArguments(&req); err != nil {
		log.Error().Err(err).Interface("request", request.GetRawArguments()).Msg("Failed to bind arguments")
		return errors.ErrMCPTool(err), nil
	}

	talkers := util.Str2List(req.Talker, ",")
	if len(talkers) == 0 {
		return errors.ErrMCPTool(errors.ErrInvalidArg("talker")), nil
	}

	buf := &bytes.Buffer{}
	count := 0
	for _, talker := range talkers {
		messages, err := s.miner.GetMessages(talker, req.Start, req.End)
		if err != nil {
			log.Error().Err(err).Msg("Failed to get messages")
			return errors.ErrMCPTool(err), nil
		}
		for _, m := range messages {
			buf.WriteString(m.PlainText(len(talkers) > 1, "2006-01-02 15:04:05"))
			buf.WriteString("\n")
		}
		count += len(messages)
	}
	if count == 0 {
		buf.WriteString("未找到符合查询条件的聊天记录")
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{
				Type: "text",
				Text: buf.String(),
			},
		},
	}, nil
}

func (s *Service) handleMCPCurrentTime(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{
				Type: "text",
				Text: time.Now().Local().Format(time.RFC3339),
			},
		},
	}, nil
}
